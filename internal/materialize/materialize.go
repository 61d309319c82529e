package materialize

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/initt-labs/initt/internal/errs"
	"github.com/initt-labs/initt/internal/platform"
	"github.com/initt-labs/initt/internal/render"
	"github.com/initt-labs/initt/internal/ui"
	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"
)

// Options controls a materialization.
type Options struct {
	// Overwrite allows writing into a non-empty target directory. Existing
	// files the template also produces are replaced; others are kept.
	Overwrite bool
	Logger    zerolog.Logger
	Reporter  *ui.Reporter
}

// Result lists what was created, in creation order. Paths are relative to
// the target and slash-separated.
type Result struct {
	Target string
	Dirs   []string
	Files  []string
}

// Materialize writes out beneath target. On cancellation it stops before
// the next file and returns the partial Result with a Canceled error.
func Materialize(ctx context.Context, target string, out *render.Output, opts Options) (*Result, error) {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = ui.Discard()
	}
	log := opts.Logger

	target, err := filepath.Abs(target)
	if err != nil {
		return nil, errs.Wrap(errs.KindFilesystem, "materialize", target, err)
	}

	state, err := platform.InspectTarget(target)
	if err != nil {
		return nil, errs.Wrap(errs.KindFilesystem, "materialize", target, err)
	}
	log.Debug().Str("target", target).Stringer("state", state).Msg("inspected target")

	switch state {
	case platform.TargetFile:
		return nil, errs.New(errs.KindAlreadyExists, "materialize", "%s exists and is not a directory", target)
	case platform.TargetNonEmptyDir:
		if !opts.Overwrite {
			return nil, errs.New(errs.KindAlreadyExists, "materialize",
				"%s already exists and is not empty (use --overwrite to write into it)", target)
		}
		log.Debug().Str("target", target).Msg("writing into non-empty directory")
	}

	res := &Result{Target: target}
	if err := ctx.Err(); err != nil {
		return res, errs.Wrap(errs.KindCanceled, "materialize", target, err)
	}
	if err := os.MkdirAll(target, platform.DirMode); err != nil {
		return res, errs.Wrap(errs.KindFilesystem, "materialize", target, err)
	}

	for _, d := range out.Dirs {
		if err := ctx.Err(); err != nil {
			return res, errs.Wrap(errs.KindCanceled, "materialize", target, err)
		}
		abs := filepath.Join(target, filepath.FromSlash(d))
		if err := os.MkdirAll(abs, platform.DirMode); err != nil {
			return res, errs.Wrap(errs.KindFilesystem, "materialize", abs, err)
		}
		res.Dirs = append(res.Dirs, d)
		reporter.Directory(abs)
	}

	for _, f := range out.Files {
		if err := ctx.Err(); err != nil {
			log.Debug().Int("written", len(res.Files)).Int("total", len(out.Files)).Msg("canceled")
			return res, errs.Wrap(errs.KindCanceled, "materialize", target, err)
		}

		abs := filepath.Join(target, filepath.FromSlash(f.Path))
		if err := writeFile(abs, f); err != nil {
			return res, err
		}
		res.Files = append(res.Files, f.Path)
		reporter.File(abs)
	}

	return res, nil
}

func writeFile(abs string, f render.File) error {
	if err := os.MkdirAll(filepath.Dir(abs), platform.DirMode); err != nil {
		return errs.Wrap(errs.KindFilesystem, "materialize", filepath.Dir(abs), err)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return errs.New(errs.KindAlreadyExists, "materialize", "%s exists and is a directory", abs)
	}
	if err := atomic.WriteFile(abs, bytes.NewReader(f.Content)); err != nil {
		return errs.Wrap(errs.KindFilesystem, "materialize", abs, err)
	}
	if err := platform.Chmod(abs, f.Mode); err != nil {
		return errs.Wrap(errs.KindFilesystem, "materialize", abs, err)
	}
	return nil
}
