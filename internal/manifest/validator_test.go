package manifest

import (
	"strings"
	"testing"
)

func TestValidateFile_ValidManifests(t *testing.T) {
	for _, file := range []string{"valid-basic.yaml", "valid-full.yaml"} {
		t.Run(file, func(t *testing.T) {
			result, err := ValidateFile(testPath(file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) error: %v", file, err)
			}
			if !result.Valid {
				t.Errorf("expected valid, got %d issues: %s", len(result.Issues), result.Summary())
			}
		})
	}
}

func TestValidateFile_InvalidManifests(t *testing.T) {
	invalidFiles := []struct {
		file    string
		keyword string
	}{
		{"invalid-missing-name.yaml", "required"},
		{"invalid-bad-name-pattern.yaml", "pattern"},
		{"invalid-unknown-field.yaml", "additionalProperties"},
		{"invalid-select-without-choices.yaml", "required"},
		{"invalid-bad-variable-type.yaml", "enum"},
		{"invalid-duplicate-variable.yaml", "unique"},
		{"invalid-when-not-confirm.yaml", "when"},
		{"invalid-select-default.yaml", "default"},
	}

	for _, tt := range invalidFiles {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Fatalf("expected invalid for %s", tt.file)
			}

			found := false
			for _, issue := range result.Issues {
				if issue.Keyword == tt.keyword {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue with keyword %q, got: %+v", tt.keyword, result.Issues)
			}
		})
	}
}

func TestValidateFile_InvalidYAML(t *testing.T) {
	if _, err := ValidateFile(testPath("invalid-not-yaml.yaml")); err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}

func TestValidate_IssueMessages(t *testing.T) {
	result, err := ValidateFile(testPath("invalid-bad-name-pattern.yaml"))
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if result.Valid || len(result.Issues) == 0 {
		t.Fatal("expected invalid result with issues")
	}
	if !strings.Contains(result.Summary(), "/name") {
		t.Errorf("summary should mention /name, got %q", result.Summary())
	}
}

func TestCheckSemantics(t *testing.T) {
	tests := []struct {
		name   string
		m      TemplateManifest
		issues int
	}{
		{
			name:   "clean",
			m:      TemplateManifest{Name: "x", Variables: []Variable{{Name: "a", Default: "v"}}},
			issues: 0,
		},
		{
			name:   "bad regexp",
			m:      TemplateManifest{Name: "x", Variables: []Variable{{Name: "a", Pattern: "("}}},
			issues: 1,
		},
		{
			name:   "confirm with string default",
			m:      TemplateManifest{Name: "x", Variables: []Variable{{Name: "a", Type: TypeConfirm, Default: "yes"}}},
			issues: 1,
		},
		{
			name:   "text with bool default",
			m:      TemplateManifest{Name: "x", Variables: []Variable{{Name: "a", Default: true}}},
			issues: 1,
		},
		{
			name:   "rule on unknown variable",
			m:      TemplateManifest{Name: "x", Files: []FileRule{{Path: "a", When: "!ghost"}}},
			issues: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckSemantics(&tt.m)
			if len(got) != tt.issues {
				t.Errorf("got %d issues, want %d: %+v", len(got), tt.issues, got)
			}
		})
	}
}

func TestValidate_SchemaCompiles(t *testing.T) {
	schema, err := getSchema()
	if err != nil {
		t.Fatalf("getSchema() error: %v", err)
	}
	if schema == nil {
		t.Fatal("getSchema() returned nil schema")
	}
}
