package cli

import (
	"fmt"
	"os"

	"github.com/initt-labs/initt/internal/catalog"
	"github.com/initt-labs/initt/internal/errs"
	"github.com/initt-labs/initt/internal/render"
	"github.com/initt-labs/initt/internal/ui"
	"github.com/spf13/cobra"
)

func newLintCmd(opts *rootOptions, s streams) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <dir|id>",
		Short: "Validate a template",
		Long: `Validate a template directory, or a catalog template by id: the manifest
is checked against the schema and every variable referenced by a file, path,
directory, hook or file rule must be declared.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadForLint(opts, s, args[0])
			if err != nil {
				return err
			}

			issues, err := render.Lint(t)
			if err != nil {
				return err
			}

			reporter := ui.NewReporter(s.out)
			if len(issues) > 0 {
				for _, issue := range issues {
					reporter.Warning("Lint", issue.String())
				}
				return errs.New(errs.KindValidation, "lint", "template %q has %d undeclared reference(s)", t.ID, len(issues))
			}
			reporter.Success("Lint", fmt.Sprintf("Template %s is valid", t.ID))
			return nil
		},
	}
}

// loadForLint treats arg as a directory when one exists at that path and
// as a template id otherwise.
func loadForLint(opts *rootOptions, s streams, arg string) (*catalog.Template, error) {
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return catalog.LoadDir(arg)
	}
	return newCatalog(opts, newLogger(opts, s)).Get(arg)
}
