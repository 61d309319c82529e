package platform

import (
	"context"
	"os/exec"
	"runtime"
)

// ShellCommand returns a command that runs line through the system shell:
// "sh -c" on Unix and "cmd /C" on Windows.
func ShellCommand(ctx context.Context, line string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", line)
	}
	return exec.CommandContext(ctx, "sh", "-c", line)
}
