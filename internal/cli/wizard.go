package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/initt-labs/initt/internal/answers"
	"github.com/initt-labs/initt/internal/catalog"
	"github.com/initt-labs/initt/internal/config"
	"github.com/initt-labs/initt/internal/errs"
	"github.com/initt-labs/initt/internal/prompt"
	"github.com/initt-labs/initt/internal/scaffold"
	"github.com/initt-labs/initt/internal/ui"
)

// runWizard asks for the template, its variables and the target path, in
// that order, then creates the project. Questions already answered by
// flags are skipped.
func runWizard(ctx context.Context, opts *rootOptions, build buildInfo, s streams) error {
	logger := newLogger(opts, s)
	logger.Debug().Str("version", build.version).Str("commit", build.commit).Str("date", build.date).Msg("starting wizard")

	reporter := ui.NewReporter(s.out)
	cat := newCatalog(opts, logger)
	prompting := interactive(opts, s)
	maxAttempts := config.MaxAttempts()
	console := prompt.NewConsole(s.in, s.out, maxAttempts)

	presets, err := parseSets(opts.sets)
	if err != nil {
		return err
	}

	id := opts.template
	if id == "" {
		if !prompting {
			return errs.New(errs.KindValidation, "cli", "--template is required in non-interactive mode")
		}
		ids, err := cat.IDs()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return errs.New(errs.KindTemplateNotFound, "cli", "no templates available")
		}
		id, err = interact(ctx, func() (string, error) {
			return console.Select("Select project template type:", ids, "")
		})
		if err != nil {
			return err
		}
	}

	t, err := cat.Get(id)
	if err != nil {
		return err
	}
	if err := catalog.CheckCompatible(t, build.version); err != nil {
		return err
	}

	session := prompt.NewSession(t.Manifest.Variables, maxAttempts)
	if err := session.Preset(presets); err != nil {
		return err
	}

	var set answers.Set
	if prompting {
		set, err = interact(ctx, func() (answers.Set, error) { return console.Collect(session) })
	} else {
		if err = session.AcceptDefaults(); err == nil {
			set, err = session.Answers()
		}
	}
	if err != nil {
		return err
	}

	target := opts.output
	if target == "" {
		target = defaultTarget(t, set)
		if prompting {
			target, err = interact(ctx, func() (string, error) {
				return console.AskPath("Select project creation path:", target)
			})
			if err != nil {
				return err
			}
		}
	}

	fmt.Fprintln(s.out)
	_, err = scaffold.Generate(ctx, scaffold.Request{
		Template:   t,
		Answers:    set,
		Target:     target,
		Overwrite:  opts.overwrite,
		RunHooks:   config.RunHooks() && !opts.noHooks,
		Version:    build.version,
		Reporter:   reporter,
		Logger:     logger,
		HookStdout: s.out,
		HookStderr: s.err,
	})
	return err
}

// defaultTarget is ./<project_name> when the template asks for one and
// ./<template id> otherwise.
func defaultTarget(t *catalog.Template, set answers.Set) string {
	if name := set.String("project_name"); name != "" {
		return "." + string(filepath.Separator) + name
	}
	return "." + string(filepath.Separator) + t.ID
}

// interact runs a blocking prompt but returns as soon as ctx is canceled,
// since a read from a terminal cannot be interrupted.
func interact[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, errs.Wrap(errs.KindCanceled, "prompt", "", ctx.Err())
	}
}
