package main

import (
	"os"

	"github.com/initt-labs/initt/internal/cli"
	"github.com/initt-labs/initt/internal/errs"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		os.Exit(errs.ExitCode(err))
	}
}
