package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/initt-labs/initt/internal/branding"
	"github.com/initt-labs/initt/internal/config"
	"github.com/initt-labs/initt/internal/errs"
	"github.com/initt-labs/initt/internal/ui"
	"github.com/spf13/cobra"
)

type buildInfo struct {
	version string
	commit  string
	date    string
}

// streams are the standard streams a command talks to.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
	// tty is true when both in and out are terminals.
	tty bool
}

type rootOptions struct {
	template       string
	output         string
	sets           []string
	overwrite      bool
	noHooks        bool
	nonInteractive bool
	templatesDir   string
	verbose        bool
}

// Execute runs the root command with build info injected via ldflags.
// SIGINT and SIGTERM cancel the running command. The returned error has
// already been reported on stderr.
func Execute(version, commit, date string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := streams{in: os.Stdin, out: os.Stdout, err: os.Stderr, tty: hasTTY()}
	cmd := newRootCmd(buildInfo{version: version, commit: commit, date: date}, s)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		reportError(s.err, err)
	}
	return err
}

func reportError(w io.Writer, err error) {
	r := ui.NewReporter(w)
	if errs.IsKind(err, errs.KindCanceled) {
		r.Warning("Cancel", "User interrupted the operation")
		return
	}
	r.Error("Error", err.Error())
}

func newRootCmd(build buildInfo, s streams) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` creates new projects from templates.

Run without arguments to pick a template, answer its questions and choose
where the project goes. Templates come from --templates-dir, ~/.initt/templates
and the set built into the binary, in that order.`,
		Example: `  initt
  initt -t python -o ./demo --set project_name=demo
  initt --non-interactive -t nodejs --set project_name=web --no-hooks`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(cmd.Context(), opts, build, s)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.template, "template", "t", "", "Template id to use (skips the template question)")
	f.StringVarP(&opts.output, "output", "o", "", "Directory to create the project in (default: ./<project_name>)")
	f.StringArrayVar(&opts.sets, "set", nil, "Pre-answer a variable as name=value (repeatable)")
	f.BoolVar(&opts.overwrite, "overwrite", false, "Allow writing into a non-empty directory")
	f.BoolVar(&opts.noHooks, "no-hooks", false, "Do not run the template's post-creation hooks")
	f.BoolVar(&opts.nonInteractive, "non-interactive", false, "Never prompt; use --set values and defaults")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.templatesDir, "templates-dir", "", "Extra template directory searched first")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	cmd.SetIn(s.in)
	cmd.SetOut(s.out)
	cmd.SetErr(s.err)

	cmd.AddCommand(newListCmd(opts, s))
	cmd.AddCommand(newLintCmd(opts, s))
	cmd.AddCommand(newConfigCmd(s))
	return cmd
}
