package render

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/initt-labs/initt/internal/answers"
	"github.com/initt-labs/initt/internal/catalog"
	"github.com/initt-labs/initt/internal/errs"
)

// TemplateSuffix marks files whose content is executed as a template.
const TemplateSuffix = ".tmpl"

// File is one rendered file, held in memory until it is written.
type File struct {
	Path    string // slash-separated, relative to the project root
	Content []byte
	Mode    fs.FileMode
}

// Output is the complete rendering of a template.
type Output struct {
	Files []File
	Dirs  []string
	Hooks []string
}

// plannedFile is a source file that survived the conditional rules.
type plannedFile struct {
	src     string
	path    *template.Template
	content *template.Template // nil for verbatim files
	raw     []byte
	mode    fs.FileMode
}

// Render renders every included file of t with the answers in set. It
// fails with UndefinedVariable, before producing any output, if anything
// the template references has no answer.
func Render(t *catalog.Template, set answers.Set) (*Output, error) {
	data := set.Map()
	missing := newMissing()

	files, err := plan(t, set, missing)
	if err != nil {
		return nil, err
	}

	dirTmpls := make([]*template.Template, len(t.Manifest.Directories))
	for i, d := range t.Manifest.Directories {
		tmpl, err := parseText("directories", d)
		if err != nil {
			return nil, err
		}
		missing.check(tmpl, set, "directory "+d)
		dirTmpls[i] = tmpl
	}

	hookTmpls := make([]*template.Template, len(t.Manifest.Hooks))
	for i, h := range t.Manifest.Hooks {
		tmpl, err := parseText("hooks", h)
		if err != nil {
			return nil, err
		}
		missing.check(tmpl, set, "hook "+h)
		hookTmpls[i] = tmpl
	}

	if err := missing.err(t.ID); err != nil {
		return nil, err
	}

	out := &Output{}
	seen := make(map[string]string)
	for _, pf := range files {
		rel, err := renderPath(pf.path, data)
		if err != nil {
			return nil, fmt.Errorf("rendering path of %s: %w", pf.src, err)
		}
		if prev, dup := seen[rel]; dup {
			return nil, errs.New(errs.KindValidation, "render", "%s and %s both render to %s", prev, pf.src, rel)
		}
		seen[rel] = pf.src

		content := pf.raw
		if pf.content != nil {
			var buf bytes.Buffer
			if err := pf.content.Execute(&buf, data); err != nil {
				return nil, classifyExec(pf.src, err)
			}
			content = buf.Bytes()
		}

		out.Files = append(out.Files, File{Path: rel, Content: content, Mode: pf.mode})
	}

	for _, tmpl := range dirTmpls {
		rel, err := renderPath(tmpl, data)
		if err != nil {
			return nil, fmt.Errorf("rendering directory: %w", err)
		}
		out.Dirs = append(out.Dirs, rel)
	}
	if err := checkLayout(out); err != nil {
		return nil, err
	}

	for _, tmpl := range hookTmpls {
		cmd, err := execute(tmpl, data)
		if err != nil {
			return nil, classifyExec("hook", err)
		}
		out.Hooks = append(out.Hooks, strings.TrimSpace(cmd))
	}

	return out, nil
}

// plan walks the template tree, applies conditional file rules, and
// parses every path and .tmpl body, noting unanswered references.
func plan(t *catalog.Template, set answers.Set, missing *missingRefs) ([]plannedFile, error) {
	var files []plannedFile
	if t.Files == nil {
		return nil, nil
	}

	err := fs.WalkDir(t.Files, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		include, err := included(t, p, set, missing)
		if err != nil || !include {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		raw, err := fs.ReadFile(t.Files, p)
		if err != nil {
			return err
		}

		dst := p
		isTmpl := strings.HasSuffix(p, TemplateSuffix)
		if isTmpl {
			dst = strings.TrimSuffix(p, TemplateSuffix)
		}

		pathTmpl, err := parseText(p, dst)
		if err != nil {
			return err
		}
		missing.check(pathTmpl, set, p)

		pf := plannedFile{src: p, path: pathTmpl, raw: raw, mode: fileMode(info.Mode())}
		if isTmpl {
			pf.content, err = parseText(p, string(raw))
			if err != nil {
				return err
			}
			missing.check(pf.content, set, p)
		}
		files = append(files, pf)
		return nil
	})
	if err != nil {
		var classified *errs.Error
		if errors.As(err, &classified) {
			return nil, err
		}
		return nil, errs.Wrap(errs.KindFilesystem, "render", t.ID, err)
	}
	return files, nil
}

// included applies the manifest's file rules to the source path p. A file
// is excluded when any matching rule's condition is false.
func included(t *catalog.Template, p string, set answers.Set, missing *missingRefs) (bool, error) {
	for _, rule := range t.Manifest.Files {
		ok, err := matchRule(rule.Path, p)
		if err != nil {
			return false, errs.New(errs.KindValidation, "render", "bad file rule %q: %v", rule.Path, err)
		}
		if !ok {
			continue
		}

		name, negate := strings.CutPrefix(rule.When, "!")
		if !set.Has(name) {
			missing.add(name, "file rule "+rule.Path)
			continue
		}
		if set.Bool(name) == negate {
			return false, nil
		}
	}
	return true, nil
}

// matchRule reports whether source path p is covered by pattern. A pattern
// ending in "/" covers a whole subtree; anything else is a path.Match glob
// tried against the full path and, without the .tmpl suffix, its output name.
func matchRule(pattern, p string) (bool, error) {
	if strings.HasSuffix(pattern, "/") {
		return strings.HasPrefix(p, pattern), nil
	}
	for _, candidate := range []string{p, strings.TrimSuffix(p, TemplateSuffix)} {
		ok, err := path.Match(pattern, candidate)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// fileMode keeps the source permission bits and guarantees the owner can
// read and write the generated file. Embedded files report 0444.
func fileMode(m fs.FileMode) fs.FileMode {
	return m.Perm() | 0o600
}

func parseText(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(Funcs()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, errs.Wrap(errs.KindValidation, "render", name, err)
	}
	return tmpl, nil
}

func execute(tmpl *template.Template, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderPath executes a path template and checks the result stays inside
// the project root.
func renderPath(tmpl *template.Template, data map[string]any) (string, error) {
	raw, err := execute(tmpl, data)
	if err != nil {
		return "", classifyExec(tmpl.Name(), err)
	}
	return cleanRel(raw)
}

func cleanRel(raw string) (string, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "\\", "/"))
	if raw == "" {
		return "", errs.New(errs.KindValidation, "render", "path renders empty")
	}
	if path.IsAbs(raw) {
		return "", errs.New(errs.KindValidation, "render", "path %q must be relative", raw)
	}
	for _, seg := range strings.Split(raw, "/") {
		if seg == ".." {
			return "", errs.New(errs.KindValidation, "render", "path %q escapes the project directory", raw)
		}
		if seg != "" && strings.TrimSpace(seg) == "" {
			return "", errs.New(errs.KindValidation, "render", "path %q has a blank segment", raw)
		}
	}
	clean := path.Clean(raw)
	if clean == "." {
		return "", errs.New(errs.KindValidation, "render", "path %q renders to the project root", raw)
	}
	return clean, nil
}

// checkLayout rejects outputs where a file path is also needed as a
// directory, either by a declared directory or by another file.
func checkLayout(out *Output) error {
	files := make(map[string]bool, len(out.Files))
	for _, f := range out.Files {
		files[f.Path] = true
	}

	conflict := func(p, kind string) error {
		for dir := path.Dir(p); dir != "."; dir = path.Dir(dir) {
			if files[dir] {
				return errs.New(errs.KindValidation, "render", "file %s is also the parent of %s %s", dir, kind, p)
			}
		}
		return nil
	}

	for _, d := range out.Dirs {
		if files[d] {
			return errs.New(errs.KindValidation, "render", "%s renders as both a file and a directory", d)
		}
		if err := conflict(d, "directory"); err != nil {
			return err
		}
	}
	for _, f := range out.Files {
		if err := conflict(f.Path, "file"); err != nil {
			return err
		}
	}
	return nil
}

// classifyExec maps a text/template execution error to an error kind.
// Missing map keys are reported as UndefinedVariable.
func classifyExec(src string, err error) error {
	if strings.Contains(err.Error(), "map has no entry for key") {
		return errs.Wrap(errs.KindUndefinedVariable, "render", src, err)
	}
	var classified *errs.Error
	if errors.As(err, &classified) {
		return err
	}
	return errs.Wrap(errs.KindValidation, "render", src, err)
}

// missingRefs accumulates references that have no answer.
type missingRefs struct {
	where map[string][]string
}

func newMissing() *missingRefs {
	return &missingRefs{where: make(map[string][]string)}
}

func (m *missingRefs) add(name, where string) {
	m.where[name] = append(m.where[name], where)
}

func (m *missingRefs) check(tmpl *template.Template, set answers.Set, where string) {
	for _, name := range references(tmpl) {
		if !set.Has(name) {
			m.add(name, where)
		}
	}
}

func (m *missingRefs) err(templateID string) error {
	if len(m.where) == 0 {
		return nil
	}
	names := make([]string, 0, len(m.where))
	for name := range m.where {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s (in %s)", name, strings.Join(m.where[name], ", "))
	}
	return errs.New(errs.KindUndefinedVariable, "render",
		"template %q references undefined variable(s): %s", templateID, strings.Join(parts, "; "))
}
