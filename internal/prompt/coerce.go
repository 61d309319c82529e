package prompt

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/initt-labs/initt/internal/manifest"
)

// Coerce converts raw user input into the typed answer for v, applying the
// declared default to empty input and then every validation rule. The
// returned error message is meant to be shown to the user.
func Coerce(v manifest.Variable, input string) (any, error) {
	input = strings.TrimSpace(input)

	switch v.Kind() {
	case manifest.TypeConfirm:
		return coerceConfirm(v, input)
	case manifest.TypeSelect:
		return coerceSelect(v, input)
	}

	value := input
	if value == "" {
		value = DefaultText(v)
	}
	if v.Kind() == manifest.TypePath && value != "" {
		value = filepath.Clean(value)
	}
	if err := checkText(v, value); err != nil {
		return nil, err
	}
	return value, nil
}

// DefaultText renders the declared default the way it is shown in prompts.
func DefaultText(v manifest.Variable) string {
	if v.Default == nil {
		return ""
	}
	return fmt.Sprint(v.Default)
}

func checkText(v manifest.Variable, value string) error {
	if value == "" {
		if v.Required {
			return fmt.Errorf("a value is required")
		}
		return nil
	}
	if v.Pattern != "" {
		re, err := regexp.Compile(v.Pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %q in template: %v", v.Pattern, err)
		}
		if !re.MatchString(value) {
			return fmt.Errorf("%q does not match pattern %s", value, v.Pattern)
		}
	}
	if len(v.Choices) > 0 && !slices.Contains(v.Choices, value) {
		return fmt.Errorf("%q is not one of: %s", value, strings.Join(v.Choices, ", "))
	}
	return nil
}

func coerceSelect(v manifest.Variable, input string) (any, error) {
	if input == "" {
		input = DefaultText(v)
	}
	if input == "" {
		if !v.Required && len(v.Choices) > 0 {
			return v.Choices[0], nil
		}
		return nil, fmt.Errorf("choose one of: %s", strings.Join(v.Choices, ", "))
	}
	if n, err := strconv.Atoi(input); err == nil && !slices.Contains(v.Choices, input) {
		if n < 1 || n > len(v.Choices) {
			return nil, fmt.Errorf("invalid selection %d: choose 1-%d", n, len(v.Choices))
		}
		return v.Choices[n-1], nil
	}
	if !slices.Contains(v.Choices, input) {
		return nil, fmt.Errorf("%q is not one of: %s", input, strings.Join(v.Choices, ", "))
	}
	return input, nil
}

func coerceConfirm(v manifest.Variable, input string) (any, error) {
	if input == "" {
		b, _ := v.Default.(bool)
		return b, nil
	}
	switch strings.ToLower(input) {
	case "y", "yes", "true", "1":
		return true, nil
	case "n", "no", "false", "0":
		return false, nil
	}
	return nil, fmt.Errorf("answer yes or no, got %q", input)
}
