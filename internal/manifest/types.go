package manifest

// FileName is the manifest file expected at the root of every template directory.
const FileName = "template.yaml"

// FilesDir is the subdirectory holding the files a template renders.
const FilesDir = "files"

// TemplateManifest describes one project template.
type TemplateManifest struct {
	Name        string     `yaml:"name" json:"name"`
	DisplayName string     `yaml:"display_name,omitempty" json:"display_name,omitempty"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string     `yaml:"version,omitempty" json:"version,omitempty"`
	Requires    string     `yaml:"requires,omitempty" json:"requires,omitempty"`
	Tags        []string   `yaml:"tags,omitempty" json:"tags,omitempty"`
	Variables   []Variable `yaml:"variables,omitempty" json:"variables,omitempty"`
	Files       []FileRule `yaml:"files,omitempty" json:"files,omitempty"`
	Directories []string   `yaml:"directories,omitempty" json:"directories,omitempty"`
	Hooks       []string   `yaml:"hooks,omitempty" json:"hooks,omitempty"`
}

// Variable declares one value the user supplies before rendering.
type Variable struct {
	Name     string   `yaml:"name" json:"name"`
	Type     string   `yaml:"type,omitempty" json:"type,omitempty"`
	Message  string   `yaml:"message,omitempty" json:"message,omitempty"`
	Default  any      `yaml:"default,omitempty" json:"default,omitempty"`
	Required bool     `yaml:"required,omitempty" json:"required,omitempty"`
	Pattern  string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Choices  []string `yaml:"choices,omitempty" json:"choices,omitempty"`
}

// FileRule includes the matching template files only when the boolean
// variable named by When is true (or false, when prefixed with "!").
type FileRule struct {
	Path string `yaml:"path" json:"path"`
	When string `yaml:"when" json:"when"`
}

// Variable type constants.
const (
	TypeText    = "text"
	TypeSelect  = "select"
	TypeConfirm = "confirm"
	TypePath    = "path"
)

// ValidTypes contains all valid variable type values.
var ValidTypes = []string{
	TypeText,
	TypeSelect,
	TypeConfirm,
	TypePath,
}

// Kind returns the variable type, defaulting to text.
func (v Variable) Kind() string {
	if v.Type == "" {
		return TypeText
	}
	return v.Type
}

// Prompt returns the question shown to the user.
func (v Variable) Prompt() string {
	if v.Message != "" {
		return v.Message
	}
	return v.Name
}

// Variable returns the declaration named name.
func (m *TemplateManifest) Variable(name string) (Variable, bool) {
	for _, v := range m.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}
