package render

import (
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/initt-labs/initt/internal/catalog"
	"github.com/initt-labs/initt/internal/errs"
)

// Issue is a variable referenced somewhere in a template without a
// matching declaration in its manifest.
type Issue struct {
	Variable string
	Where    string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: undeclared variable %q", i.Where, i.Variable)
}

// Lint checks that every variable referenced by any file (included or
// not), path, directory, hook, or file rule of t is declared. Template
// syntax errors are returned as the error.
func Lint(t *catalog.Template) ([]Issue, error) {
	declared := make(map[string]bool, len(t.Manifest.Variables))
	for _, v := range t.Manifest.Variables {
		declared[v.Name] = true
	}

	var issues []Issue
	check := func(tmpl *template.Template, where string) {
		for _, name := range references(tmpl) {
			if !declared[name] {
				issues = append(issues, Issue{Variable: name, Where: where})
			}
		}
	}

	var err error
	if t.Files != nil {
		err = fs.WalkDir(t.Files, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			pathTmpl, err := parseText(p, strings.TrimSuffix(p, TemplateSuffix))
			if err != nil {
				return err
			}
			check(pathTmpl, p)

			if strings.HasSuffix(p, TemplateSuffix) {
				raw, err := fs.ReadFile(t.Files, p)
				if err != nil {
					return err
				}
				body, err := parseText(p, string(raw))
				if err != nil {
					return err
				}
				check(body, p)
			}
			return nil
		})
	}
	if err != nil {
		if _, ok := errs.KindOf(err); ok {
			return nil, err
		}
		return nil, errs.Wrap(errs.KindFilesystem, "lint", t.ID, err)
	}

	for _, d := range t.Manifest.Directories {
		tmpl, err := parseText("directories", d)
		if err != nil {
			return nil, err
		}
		check(tmpl, "directory "+d)
	}
	for _, h := range t.Manifest.Hooks {
		tmpl, err := parseText("hooks", h)
		if err != nil {
			return nil, err
		}
		check(tmpl, "hook "+h)
	}
	for _, rule := range t.Manifest.Files {
		name := strings.TrimPrefix(rule.When, "!")
		if !declared[name] {
			issues = append(issues, Issue{Variable: name, Where: "file rule " + rule.Path})
		}
	}

	return issues, nil
}
