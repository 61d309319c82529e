package cli

import (
	"os"
	"strings"

	"github.com/initt-labs/initt/internal/catalog"
	"github.com/initt-labs/initt/internal/config"
	"github.com/initt-labs/initt/internal/errs"
	"github.com/initt-labs/initt/internal/logging"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// interactive reports whether the wizard may prompt.
func interactive(opts *rootOptions, s streams) bool {
	return s.tty && !opts.nonInteractive && !config.NonInteractive()
}

func newLogger(opts *rootOptions, s streams) zerolog.Logger {
	level := logging.ParseLevel(config.LogLevel())
	if opts.verbose {
		level = zerolog.DebugLevel
	}
	return logging.New(s.err, level)
}

// newCatalog layers the template sources: the explicit directory (flag,
// then config or INITT_TEMPLATES_DIR), the user directory, the builtins.
func newCatalog(opts *rootOptions, logger zerolog.Logger) *catalog.Catalog {
	var sources []catalog.Source

	dir := opts.templatesDir
	if dir == "" {
		dir = config.TemplatesDir()
	}
	if dir != "" {
		sources = append(sources, catalog.DirSource("custom", dir))
	}
	sources = append(sources,
		catalog.DirSource("user", config.UserTemplatesDir()),
		catalog.Builtin(),
	)
	return catalog.New(logger, sources...)
}

// parseSets turns repeated name=value flags into presets. A later value for
// the same name wins.
func parseSets(list []string) (map[string]string, error) {
	presets := make(map[string]string, len(list))
	for _, item := range list {
		name, value, ok := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errs.New(errs.KindValidation, "cli", "invalid --set %q: expected name=value", item)
		}
		presets[name] = value
	}
	return presets, nil
}
