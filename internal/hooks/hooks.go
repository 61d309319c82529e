package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/initt-labs/initt/internal/branding"
	"github.com/initt-labs/initt/internal/errs"
	"github.com/initt-labs/initt/internal/platform"
	"github.com/initt-labs/initt/internal/ui"
	"github.com/rs/zerolog"
)

// Runner executes hook commands.
type Runner struct {
	// Stdout and Stderr receive the hooks' output; they default to
	// os.Stdout and os.Stderr.
	Stdout   io.Writer
	Stderr   io.Writer
	Reporter *ui.Reporter
	Logger   zerolog.Logger
}

// Result is the outcome of one hook.
type Result struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error // set when the command could not be started
}

// OK reports whether the hook exited successfully.
func (r Result) OK() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Warning describes a failed hook for the end-of-run summary.
func (r Result) Warning() string {
	if r.Err != nil {
		return fmt.Sprintf("hook %q could not run: %v", r.Command, r.Err)
	}
	return fmt.Sprintf("hook %q exited with code %d", r.Command, r.ExitCode)
}

// Env describes the project a hook runs for.
type Env struct {
	ProjectDir string
	Template   string
	// Extra holds additional NAME=value pairs, such as the answers.
	Extra []string
}

// Run executes commands in order with dir as the working directory. Failed
// hooks are recorded in the results. Only cancellation of ctx stops the
// run early, returning the results so far and a Canceled error.
func (r *Runner) Run(ctx context.Context, dir string, commands []string, env Env) ([]Result, error) {
	if len(commands) == 0 {
		return nil, nil
	}

	reporter := r.Reporter
	if reporter == nil {
		reporter = ui.Discard()
	}
	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	reporter.Info("Hooks", fmt.Sprintf("Executing %d post-creation hook(s)", len(commands)))
	environ := buildEnv(env)

	results := make([]Result, 0, len(commands))
	for _, command := range commands {
		if err := ctx.Err(); err != nil {
			return results, errs.Wrap(errs.KindCanceled, "hooks", dir, err)
		}

		reporter.Hook(command)
		res := r.runOne(ctx, dir, command, environ, stdout, stderr)
		results = append(results, res)

		if ctx.Err() != nil {
			return results, errs.Wrap(errs.KindCanceled, "hooks", dir, ctx.Err())
		}

		switch {
		case res.Err != nil:
			reporter.Error("Hook", fmt.Sprintf("Failed to execute hook command: %s - %v", command, res.Err))
		case res.ExitCode != 0:
			reporter.Error("Hook", fmt.Sprintf("Command failed with exit code %d: %s", res.ExitCode, command))
		default:
			reporter.Success("Hook", "Command executed successfully: "+command)
		}
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, dir, command string, environ []string, stdout, stderr io.Writer) Result {
	cmd := platform.ShellCommand(ctx, command)
	cmd.Dir = dir
	cmd.Env = environ

	var stderrBuf bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	r.Logger.Debug().Str("command", command).Str("dir", dir).Msg("running hook")
	err := cmd.Run()

	res := Result{Command: command, Stderr: strings.TrimSpace(stderrBuf.String())}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.Err = err
			res.ExitCode = -1
		}
	}
	r.Logger.Debug().Str("command", command).Int("exit_code", res.ExitCode).Msg("hook finished")
	return res
}

// buildEnv inherits the current process environment and adds the
// project variables.
func buildEnv(env Env) []string {
	environ := os.Environ()
	environ = setEnv(environ, branding.EnvVar("project_dir"), env.ProjectDir)
	environ = setEnv(environ, branding.EnvVar("template"), env.Template)
	for _, kv := range env.Extra {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		environ = setEnv(environ, key, value)
	}
	return environ
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
