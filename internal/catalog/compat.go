package catalog

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/initt-labs/initt/internal/errs"
)

// CheckCompatible verifies the template's "requires" constraint against
// the running initt version. Development builds ("dev" or empty) and
// templates without a constraint always pass.
func CheckCompatible(t *Template, version string) error {
	if t.Manifest.Requires == "" {
		return nil
	}
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	if version == "" || version == "dev" {
		return nil
	}

	constraint, err := semver.NewConstraint(t.Manifest.Requires)
	if err != nil {
		return errs.New(errs.KindValidation, "catalog",
			"template %q has an invalid requires constraint %q: %v", t.ID, t.Manifest.Requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return errs.New(errs.KindValidation, "catalog", "parsing initt version %q: %v", version, err)
	}
	if !constraint.Check(v) {
		return errs.New(errs.KindValidation, "catalog",
			"template %q requires initt %s, this is %s", t.ID, t.Manifest.Requires, version)
	}
	return nil
}
