package render

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/initt-labs/initt/internal/answers"
	"github.com/initt-labs/initt/internal/catalog"
	"github.com/initt-labs/initt/internal/errs"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// loadTemplate builds a template from an in-memory tree whose root holds
// template.yaml.
func loadTemplate(t *testing.T, id string, files map[string]string) *catalog.Template {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body), Mode: 0o644}
	}
	tmpl, err := catalog.Load(fsys, id, "test")
	if err != nil {
		t.Fatalf("catalog.Load() error: %v", err)
	}
	return tmpl
}

func builtin(t *testing.T, id string) *catalog.Template {
	t.Helper()
	tmpl, err := catalog.New(zerolog.Nop(), catalog.Builtin()).Get(id)
	if err != nil {
		t.Fatalf("Get(%s) error: %v", id, err)
	}
	return tmpl
}

func fileByPath(out *Output, p string) (File, bool) {
	for _, f := range out.Files {
		if f.Path == p {
			return f, true
		}
	}
	return File{}, false
}

func pythonAnswers(name string, withLicense bool) answers.Set {
	return answers.FromMap(map[string]any{
		"project_name": name,
		"description":  "",
		"license":      "MIT",
		"with_license": withLicense,
	})
}

func TestRenderBasic(t *testing.T) {
	tmpl := builtin(t, "basic")

	out, err := Render(tmpl, answers.FromMap(map[string]any{"project_name": "demo"}))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	readme, ok := fileByPath(out, "README.md")
	if !ok {
		t.Fatal("README.md not rendered")
	}
	if !strings.Contains(string(readme.Content), "demo") {
		t.Errorf("README.md = %q, want it to contain demo", readme.Content)
	}
	if _, ok := fileByPath(out, ".gitignore"); !ok {
		t.Error(".gitignore should be copied")
	}
	for _, f := range out.Files {
		if f.Mode&0o600 != 0o600 {
			t.Errorf("%s: mode %v is not owner read-write", f.Path, f.Mode)
		}
	}
}

func TestRenderConditionalFiles(t *testing.T) {
	tmpl := builtin(t, "python")

	with, err := Render(tmpl, pythonAnswers("demo", true))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	license, ok := fileByPath(with, "LICENSE")
	if !ok {
		t.Fatal("LICENSE should be rendered when with_license is true")
	}
	if !strings.Contains(string(license.Content), "MIT") {
		t.Errorf("LICENSE = %q", license.Content)
	}

	without, err := Render(tmpl, pythonAnswers("demo", false))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if _, ok := fileByPath(without, "LICENSE"); ok {
		t.Error("LICENSE should be excluded when with_license is false")
	}
	pyproject, _ := fileByPath(without, "pyproject.toml")
	if strings.Contains(string(pyproject.Content), "license =") {
		t.Errorf("pyproject.toml should omit the license:\n%s", pyproject.Content)
	}
}

func TestRenderNegatedRuleAndSubtree(t *testing.T) {
	tmpl := loadTemplate(t, "svc", map[string]string{
		"template.yaml": `name: svc
variables:
  - name: docker
    type: confirm
files:
  - path: Dockerfile
    when: docker
  - path: local/
    when: "!docker"
`,
		"files/Dockerfile":     "FROM scratch\n",
		"files/local/run.sh":   "echo local\n",
		"files/local/env.tmpl": "x\n",
		"files/main.go":        "package main\n",
	})

	tests := []struct {
		docker bool
		want   []string
	}{
		{true, []string{"Dockerfile", "main.go"}},
		{false, []string{"local/env", "local/run.sh", "main.go"}},
	}
	for _, tt := range tests {
		out, err := Render(tmpl, answers.FromMap(map[string]any{"docker": tt.docker}))
		if err != nil {
			t.Fatalf("Render(docker=%v) error: %v", tt.docker, err)
		}
		var got []string
		for _, f := range out.Files {
			got = append(got, f.Path)
		}
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("docker=%v: files = %v, want %v", tt.docker, got, tt.want)
		}
	}
}

func TestRenderTemplatedPaths(t *testing.T) {
	tmpl := builtin(t, "python")
	out, err := Render(tmpl, pythonAnswers("demo-app", true))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	for _, p := range []string{"demo_app/__init__.py", "demo_app/cmdline.py", "LICENSE", "pyproject.toml", "README.md", "requirements.txt", ".gitignore"} {
		if _, ok := fileByPath(out, p); !ok {
			t.Errorf("%s not rendered", p)
		}
	}
	if len(out.Dirs) != 1 || out.Dirs[0] != "demo_app/templates" {
		t.Errorf("Dirs = %v, want [demo_app/templates]", out.Dirs)
	}
	pyproject, _ := fileByPath(out, "pyproject.toml")
	if !strings.Contains(string(pyproject.Content), `name = "demo-app"`) {
		t.Errorf("pyproject.toml = %q", pyproject.Content)
	}
}

func TestRenderPyprojectQuotesDescription(t *testing.T) {
	tmpl := builtin(t, "python")
	desc := `says "hi" to C:\temp` + "\nand more"
	out, err := Render(tmpl, answers.FromMap(map[string]any{
		"project_name": "demo",
		"description":  desc,
		"license":      "MIT",
		"with_license": true,
	}))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	pyproject, _ := fileByPath(out, "pyproject.toml")
	var doc struct {
		Project struct {
			Name        string `toml:"name"`
			Description string `toml:"description"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal(pyproject.Content, &doc); err != nil {
		t.Fatalf("pyproject.toml is not valid TOML: %v\n%s", err, pyproject.Content)
	}
	if doc.Project.Description != desc {
		t.Errorf("description = %q, want %q", doc.Project.Description, desc)
	}
	if doc.Project.Name != "demo" {
		t.Errorf("name = %q, want demo", doc.Project.Name)
	}
}

func TestRenderHooks(t *testing.T) {
	tmpl := builtin(t, "nodejs")
	out, err := Render(tmpl, answers.FromMap(map[string]any{"project_name": "web"}))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	want := []string{"yarn install", "yarn upgrade --latest", "yarn start"}
	if strings.Join(out.Hooks, "|") != strings.Join(want, "|") {
		t.Errorf("Hooks = %v, want %v", out.Hooks, want)
	}
}

func TestRenderDeterministic(t *testing.T) {
	tmpl := builtin(t, "python")
	set := pythonAnswers("demo", true)

	first, err := Render(tmpl, set)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	second, err := Render(tmpl, set)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if len(first.Files) != len(second.Files) {
		t.Fatalf("file count differs: %d vs %d", len(first.Files), len(second.Files))
	}
	for i := range first.Files {
		a, b := first.Files[i], second.Files[i]
		if a.Path != b.Path || !bytes.Equal(a.Content, b.Content) || a.Mode != b.Mode {
			t.Errorf("file %d differs: %s vs %s", i, a.Path, b.Path)
		}
	}
}

func TestRenderUndefinedVariable(t *testing.T) {
	tmpl := builtin(t, "python")

	out, err := Render(tmpl, answers.FromMap(map[string]any{"project_name": "demo"}))
	if !errs.IsKind(err, errs.KindUndefinedVariable) {
		t.Fatalf("Render() error = %v, want UndefinedVariable", err)
	}
	if out != nil {
		t.Error("no output expected on UndefinedVariable")
	}
	for _, name := range []string{"description", "license", "with_license"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q should name %s", err, name)
		}
	}
}

func TestRenderIndexReferenceIsChecked(t *testing.T) {
	tmpl := loadTemplate(t, "idx", map[string]string{
		"template.yaml":       "name: idx\n",
		"files/name.txt.tmpl": `name={{index . "project_name"}}`,
	})

	out, err := Render(tmpl, answers.FromMap(nil))
	if !errs.IsKind(err, errs.KindUndefinedVariable) {
		t.Fatalf("Render() error = %v, want UndefinedVariable", err)
	}
	if out != nil {
		t.Error("no output expected on UndefinedVariable")
	}

	out, err = Render(tmpl, answers.FromMap(map[string]any{"project_name": "demo"}))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if f, _ := fileByPath(out, "name.txt"); string(f.Content) != "name=demo" {
		t.Errorf("name.txt = %q, want name=demo", f.Content)
	}
}

func TestRenderRejectsEscapingPaths(t *testing.T) {
	tests := []struct {
		name string
		dir  string
	}{
		{"parent", "../outside"},
		{"absolute", "/etc/initt"},
		{"empty", "{{.empty}}"},
		{"nested parent", "a/{{.up}}/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := loadTemplate(t, "bad", map[string]string{
				"template.yaml": "name: bad\nvariables:\n  - name: empty\n  - name: up\ndirectories:\n  - \"" + tt.dir + "\"\n",
			})
			_, err := Render(tmpl, answers.FromMap(map[string]any{"empty": "", "up": ".."}))
			if !errs.IsKind(err, errs.KindValidation) {
				t.Fatalf("Render() error = %v, want Validation", err)
			}
		})
	}
}

func TestRenderDuplicateOutputPath(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{"same file twice", map[string]string{
			"template.yaml":    "name: dup\n",
			"files/a.txt":      "verbatim\n",
			"files/a.txt.tmpl": "rendered\n",
		}},
		{"file is a declared directory", map[string]string{
			"template.yaml": "name: dup\ndirectories:\n  - docs\n",
			"files/docs":    "x\n",
		}},
		{"file is parent of a declared directory", map[string]string{
			"template.yaml": "name: dup\ndirectories:\n  - docs/x\n",
			"files/docs":    "x\n",
			"files/a":       "y\n",
		}},
		{"file is parent of another file", map[string]string{
			"template.yaml":    "name: dup\nvariables:\n  - name: sub\n",
			"files/a.tmpl":     "x\n",
			"files/{{.sub}}/b": "y\n",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := loadTemplate(t, "dup", tt.files)
			out, err := Render(tmpl, answers.FromMap(map[string]any{"sub": "a"}))
			if !errs.IsKind(err, errs.KindValidation) {
				t.Fatalf("Render() error = %v, want Validation", err)
			}
			if out != nil {
				t.Error("no output expected on a layout conflict")
			}
		})
	}
}

func TestRenderVerbatimFilesKeepBraces(t *testing.T) {
	tmpl := loadTemplate(t, "raw", map[string]string{
		"template.yaml": "name: raw\n",
		"files/ci.yml":  "run: ${{ '{{' }} matrix.os }}\n",
	})

	out, err := Render(tmpl, answers.FromMap(nil))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	f, ok := fileByPath(out, "ci.yml")
	if !ok {
		t.Fatal("ci.yml not rendered")
	}
	if string(f.Content) != "run: ${{ '{{' }} matrix.os }}\n" {
		t.Errorf("verbatim content changed: %q", f.Content)
	}
}

func TestBuiltinTemplatesLintClean(t *testing.T) {
	c := catalog.New(zerolog.Nop(), catalog.Builtin())
	ids, err := c.IDs()
	if err != nil {
		t.Fatalf("IDs() error: %v", err)
	}
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			tmpl, err := c.Get(id)
			if err != nil {
				t.Fatalf("Get() error: %v", err)
			}
			issues, err := Lint(tmpl)
			if err != nil {
				t.Fatalf("Lint() error: %v", err)
			}
			for _, issue := range issues {
				t.Errorf("undeclared reference: %s", issue)
			}
		})
	}
}

func TestLintReportsUndeclared(t *testing.T) {
	tmpl := loadTemplate(t, "lint", map[string]string{
		"template.yaml": `name: lint
variables:
  - name: project_name
directories:
  - "{{.module}}/cmd"
hooks:
  - "echo {{.greeting}}"
`,
		"files/{{.owner}}.txt": "x",
		"files/main.go.tmpl":   "package {{.project_name}} // {{range .items}}{{.ignored}}{{end}}",
	})

	issues, err := Lint(tmpl)
	if err != nil {
		t.Fatalf("Lint() error: %v", err)
	}
	got := map[string]bool{}
	for _, issue := range issues {
		got[issue.Variable] = true
	}
	for _, name := range []string{"module", "greeting", "owner", "items"} {
		if !got[name] {
			t.Errorf("missing issue for %s; got %v", name, issues)
		}
	}
	for _, name := range []string{"project_name", "ignored"} {
		if got[name] {
			t.Errorf("unexpected issue for %s", name)
		}
	}
}

func TestLintReportsIndexReferences(t *testing.T) {
	tmpl := loadTemplate(t, "idx", map[string]string{
		"template.yaml":    "name: idx\n",
		"files/a.txt.tmpl": `{{index . "project_name"}} {{with .x}}{{index . "inner"}}{{end}} {{index $ "owner"}}`,
	})

	issues, err := Lint(tmpl)
	if err != nil {
		t.Fatalf("Lint() error: %v", err)
	}
	got := map[string]bool{}
	for _, issue := range issues {
		got[issue.Variable] = true
	}
	for _, name := range []string{"project_name", "owner", "x"} {
		if !got[name] {
			t.Errorf("missing issue for %s; got %v", name, issues)
		}
	}
	if got["inner"] {
		t.Error("index on a rebound dot should not be reported")
	}
}

func TestLintSyntaxError(t *testing.T) {
	tmpl := loadTemplate(t, "broken", map[string]string{
		"template.yaml":    "name: broken\n",
		"files/a.txt.tmpl": "{{.unclosed",
	})

	if _, err := Lint(tmpl); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("Lint() error = %v, want Validation", err)
	}
}
