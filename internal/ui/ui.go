// Package ui prints the user-facing progress lines of a scaffold run.
// Each line carries an icon and a bracketed label, e.g.
//
//	📝 [File] Created: demo/README.md
//
// Styling is done with lipgloss using a renderer bound to the destination
// writer, so output piped to a file or a test buffer stays plain text.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Level selects the icon and color of a status line.
type Level string

const (
	LevelInfo      Level = "info"
	LevelSuccess   Level = "success"
	LevelWarning   Level = "warning"
	LevelError     Level = "error"
	LevelFile      Level = "file"
	LevelDirectory Level = "directory"
	LevelStart     Level = "start"
	LevelHook      Level = "hook"
)

var icons = map[Level]string{
	LevelInfo:      "ℹ️",
	LevelSuccess:   "🎉",
	LevelWarning:   "⚠️",
	LevelError:     "❌",
	LevelFile:      "📝",
	LevelDirectory: "📁",
	LevelStart:     "🚀",
	LevelHook:      "🔄",
}

// Reporter writes styled status lines.
type Reporter struct {
	w      io.Writer
	styles map[Level]lipgloss.Style
}

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	r := lipgloss.NewRenderer(w)
	label := r.NewStyle().Bold(true)
	return &Reporter{
		w: w,
		styles: map[Level]lipgloss.Style{
			LevelInfo:      label.Foreground(lipgloss.Color("12")),
			LevelSuccess:   label.Foreground(lipgloss.Color("10")),
			LevelWarning:   label.Foreground(lipgloss.Color("11")),
			LevelError:     label.Foreground(lipgloss.Color("9")),
			LevelFile:      label,
			LevelDirectory: label,
			LevelStart:     label.Foreground(lipgloss.Color("13")),
			LevelHook:      label.Foreground(lipgloss.Color("14")),
		},
	}
}

// Discard returns a Reporter that prints nothing.
func Discard() *Reporter {
	return NewReporter(io.Discard)
}

// Writer returns the destination writer, for streaming raw command output.
func (r *Reporter) Writer() io.Writer {
	return r.w
}

// Log prints one status line.
func (r *Reporter) Log(level Level, label, message string) {
	icon, ok := icons[level]
	if !ok {
		icon = "•"
	}
	style := r.styles[level]
	fmt.Fprintf(r.w, "%s %s %s\n", icon, style.Render("["+label+"]"), message)
}

func (r *Reporter) Info(label, message string)    { r.Log(LevelInfo, label, message) }
func (r *Reporter) Success(label, message string) { r.Log(LevelSuccess, label, message) }
func (r *Reporter) Warning(label, message string) { r.Log(LevelWarning, label, message) }
func (r *Reporter) Error(label, message string)   { r.Log(LevelError, label, message) }

// File reports a created file.
func (r *Reporter) File(path string) { r.Log(LevelFile, "File", "Created: "+path) }

// Directory reports a created directory.
func (r *Reporter) Directory(path string) { r.Log(LevelDirectory, "Directory", "Created: "+path) }

// Hook reports a hook command about to run.
func (r *Reporter) Hook(command string) { r.Log(LevelHook, "Hook", "Executing: "+command) }
