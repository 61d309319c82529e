// Package errs classifies the failures initt can surface to the user.
// Every error that leaves a core package carries one Kind so the CLI can
// print a descriptive message and map it to a stable exit code.
package errs

import (
	"context"
	"errors"
	"fmt"
)

// Kind is a coarse-grained categorization for errors.
type Kind string

const (
	KindTemplateNotFound  Kind = "template_not_found"
	KindValidation        Kind = "validation"
	KindUndefinedVariable Kind = "undefined_variable"
	KindAlreadyExists     Kind = "already_exists"
	KindFilesystem        Kind = "filesystem"
	KindCanceled          Kind = "canceled"
)

// Error wraps an underlying error with operation context and a kind.
type Error struct {
	Kind Kind
	Op   string
	Path string // Optional: relevant file path
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := e.Op
	if e.Msg != "" {
		if base != "" {
			base += ": "
		}
		base += e.Msg
	}
	if e.Path != "" {
		base += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Err != nil {
		if base != "" {
			base += ": "
		}
		base += e.Err.Error()
	}
	if base == "" {
		base = string(e.Kind)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New builds a classified error with a formatted message.
func New(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind. A nil err yields nil.
func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// KindOf returns the kind of the outermost classified error in the chain.
// Context cancellation is reported as KindCanceled even when unclassified.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled, true
	}
	return "", false
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Exit codes returned by the initt binary.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitTemplateNotFound  = 2
	ExitValidation        = 3
	ExitUndefinedVariable = 4
	ExitAlreadyExists     = 5
	ExitFilesystem        = 6
	ExitCanceled          = 130
)

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	kind, ok := KindOf(err)
	if !ok {
		return ExitFailure
	}
	switch kind {
	case KindTemplateNotFound:
		return ExitTemplateNotFound
	case KindValidation:
		return ExitValidation
	case KindUndefinedVariable:
		return ExitUndefinedVariable
	case KindAlreadyExists:
		return ExitAlreadyExists
	case KindFilesystem:
		return ExitFilesystem
	case KindCanceled:
		return ExitCanceled
	default:
		return ExitFailure
	}
}
