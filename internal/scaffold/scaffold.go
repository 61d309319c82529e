package scaffold

import (
	"context"
	"fmt"
	"io"

	"github.com/initt-labs/initt/internal/answers"
	"github.com/initt-labs/initt/internal/branding"
	"github.com/initt-labs/initt/internal/catalog"
	"github.com/initt-labs/initt/internal/hooks"
	"github.com/initt-labs/initt/internal/materialize"
	"github.com/initt-labs/initt/internal/render"
	"github.com/initt-labs/initt/internal/ui"
	"github.com/rs/zerolog"
)

// Request describes one project creation.
type Request struct {
	Template  *catalog.Template
	Answers   answers.Set
	Target    string
	Overwrite bool
	RunHooks  bool
	// Version is the running initt version, checked against the
	// template's requires constraint.
	Version string

	Reporter *ui.Reporter
	Logger   zerolog.Logger
	// HookStdout and HookStderr receive hook output; nil means os.Stdout
	// and os.Stderr.
	HookStdout io.Writer
	HookStderr io.Writer
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Dirs      []string
	Hooks     []hooks.Result
	Warnings  []string
}

// Generate creates the project described by req. A failing hook becomes a
// warning in the Result and does not fail the generation.
func Generate(ctx context.Context, req Request) (*Result, error) {
	reporter := req.Reporter
	if reporter == nil {
		reporter = ui.Discard()
	}
	t := req.Template
	log := req.Logger.With().Str("template", t.ID).Logger()

	if err := catalog.CheckCompatible(t, req.Version); err != nil {
		return nil, err
	}

	out, err := render.Render(t, req.Answers)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", t.ID, err)
	}
	log.Debug().Int("files", len(out.Files)).Int("dirs", len(out.Dirs)).Int("hooks", len(out.Hooks)).Msg("rendered")

	reporter.Log(ui.LevelStart, "Start", fmt.Sprintf("Creating %s project at %s", t.ID, req.Target))

	mres, err := materialize.Materialize(ctx, req.Target, out, materialize.Options{
		Overwrite: req.Overwrite,
		Logger:    log,
		Reporter:  reporter,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		OutputDir: mres.Target,
		Files:     mres.Files,
		Dirs:      mres.Dirs,
	}

	if len(out.Hooks) > 0 {
		if !req.RunHooks {
			reporter.Info("Hooks", fmt.Sprintf("Skipping %d post-creation hook(s)", len(out.Hooks)))
		} else {
			runner := &hooks.Runner{
				Stdout:   req.HookStdout,
				Stderr:   req.HookStderr,
				Reporter: reporter,
				Logger:   log,
			}
			results, err := runner.Run(ctx, mres.Target, out.Hooks, hooks.Env{
				ProjectDir: mres.Target,
				Template:   t.ID,
				Extra:      req.Answers.Env(branding.EnvVar("var") + "_"),
			})
			result.Hooks = results
			if err != nil {
				return result, err
			}
			for _, r := range results {
				if !r.OK() {
					result.Warnings = append(result.Warnings, r.Warning())
				}
			}
			if len(result.Warnings) > 0 {
				reporter.Warning("Hooks", "Some hooks failed to execute")
			}
		}
	}

	reporter.Success("Success", "Project creation completed")
	return result, nil
}
