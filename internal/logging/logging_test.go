package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", DefaultLevel},
		{"debug", zerolog.DebugLevel},
		{" INFO ", zerolog.InfoLevel},
		{"error", zerolog.ErrorLevel},
		{"nonsense", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.WarnLevel)

	logger.Debug().Msg("hidden detail")
	logger.Warn().Str("template", "basic").Msg("visible warning")

	out := buf.String()
	if strings.Contains(out, "hidden detail") {
		t.Errorf("debug message should be filtered, got %q", out)
	}
	if !strings.Contains(out, "visible warning") || !strings.Contains(out, "template=basic") {
		t.Errorf("expected warning with field, got %q", out)
	}
}
