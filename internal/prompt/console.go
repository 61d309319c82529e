package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/initt-labs/initt/internal/answers"
	"github.com/initt-labs/initt/internal/errs"
	"github.com/initt-labs/initt/internal/manifest"
)

// Console drives sessions over line-oriented input and output.
type Console struct {
	in          *bufio.Reader
	out         io.Writer
	maxAttempts int
}

// NewConsole returns a Console reading answers from r and writing
// questions to w.
func NewConsole(r io.Reader, w io.Writer, maxAttempts int) *Console {
	return &Console{in: bufio.NewReader(r), out: w, maxAttempts: maxAttempts}
}

// Collect asks every pending question of s until it is done or fails.
// End of input aborts the session with a Canceled error.
func (c *Console) Collect(s *Session) (answers.Set, error) {
	for {
		q, ok := s.Current()
		if !ok {
			break
		}

		c.ask(q)
		line, err := c.readLine()
		if err != nil {
			_ = s.Abort()
			return answers.Set{}, err
		}

		if err := s.Submit(line); err != nil {
			var inputErr *InputError
			if errors.As(err, &inputErr) {
				fmt.Fprintf(c.out, "  ! %s (%d attempt(s) left)\n", inputErr.Reason, inputErr.Remaining)
				continue
			}
			return answers.Set{}, err
		}
	}
	return s.Answers()
}

// Select asks the user to pick one of items and returns the chosen item.
func (c *Console) Select(message string, items []string, def string) (string, error) {
	if len(items) == 0 {
		return "", errs.New(errs.KindValidation, "prompt", "nothing to choose from for %q", message)
	}
	v := manifest.Variable{
		Name:     "choice",
		Type:     manifest.TypeSelect,
		Message:  message,
		Choices:  items,
		Required: true,
	}
	if def != "" {
		v.Default = def
	}
	set, err := c.Collect(NewSession([]manifest.Variable{v}, c.maxAttempts))
	if err != nil {
		return "", err
	}
	return set.String("choice"), nil
}

// AskPath requests a filesystem path, returning def on empty input.
func (c *Console) AskPath(message, def string) (string, error) {
	v := manifest.Variable{
		Name:     "value",
		Type:     manifest.TypePath,
		Message:  message,
		Required: true,
	}
	if def != "" {
		v.Default = def
	}
	set, err := c.Collect(NewSession([]manifest.Variable{v}, c.maxAttempts))
	if err != nil {
		return "", err
	}
	return set.String("value"), nil
}

func (c *Console) ask(q Question) {
	v := q.Variable
	switch v.Kind() {
	case manifest.TypeSelect:
		fmt.Fprintf(c.out, "? %s\n", v.Prompt())
		for i, choice := range v.Choices {
			fmt.Fprintf(c.out, "  %d) %s\n", i+1, choice)
		}
		hint := fmt.Sprintf("Enter number [1-%d]", len(v.Choices))
		if d := DefaultText(v); d != "" {
			hint += " (default: " + d + ")"
		}
		fmt.Fprintf(c.out, "%s: ", hint)
	case manifest.TypeConfirm:
		hint := "y/N"
		if b, _ := v.Default.(bool); b {
			hint = "Y/n"
		}
		fmt.Fprintf(c.out, "? %s [%s]: ", v.Prompt(), hint)
	default:
		if d := DefaultText(v); d != "" {
			fmt.Fprintf(c.out, "? %s [%s]: ", v.Prompt(), d)
		} else {
			fmt.Fprintf(c.out, "? %s: ", v.Prompt())
		}
	}
}

// readLine returns one line without its terminator. A final line without a
// newline is still returned; only a bare end of input is an abort.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", errs.New(errs.KindCanceled, "prompt", "user cancelled the operation")
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
