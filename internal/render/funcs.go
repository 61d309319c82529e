package render

import (
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Funcs returns the helper functions available inside templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"lower":   strings.ToLower,
		"upper":   strings.ToUpper,
		"title":   titleCaser.String,
		"snake":   func(s string) string { return joinWords(s, "_", false) },
		"kebab":   func(s string) string { return joinWords(s, "-", false) },
		"camel":   func(s string) string { return joinWords(s, "", true) },
		"default": defaultValue,
		"toml":    tomlString,
	}
}

// words splits s on separators and lower-to-upper case boundaries.
func words(s string) []string {
	var out []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '-' || r == '_' || r == '.' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return out
}

func joinWords(s, sep string, camel bool) string {
	ws := words(s)
	for i, w := range ws {
		w = strings.ToLower(w)
		if camel && i > 0 {
			w = titleCaser.String(w)
		}
		ws[i] = w
	}
	return strings.Join(ws, sep)
}

func defaultValue(def string, value any) string {
	if value == nil {
		return def
	}
	text := strings.TrimSpace(fmt.Sprint(value))
	if text == "" {
		return def
	}
	return text
}

// tomlString encodes s as a TOML string value, quotes included.
func tomlString(s string) (string, error) {
	b, err := toml.Marshal(struct {
		V string `toml:"v"`
	}{s})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.TrimPrefix(string(b), "v = ")), nil
}
