package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/initt-labs/initt/internal/answers"
	"github.com/initt-labs/initt/internal/errs"
	"github.com/initt-labs/initt/internal/manifest"
)

// State is the lifecycle position of a Session.
type State int

const (
	// StateAsking means at least one variable still needs an answer.
	StateAsking State = iota
	// StateDone means every variable is answered; Answers is available.
	StateDone
	// StateFailed means the session ended with an error; see Err.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAsking:
		return "asking"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Question is what the driver should ask next.
type Question struct {
	Variable manifest.Variable
	Index    int    // 0-based position among all declarations
	Total    int    // number of declarations
	Attempt  int    // 1-based attempt number for this variable
	Problem  string // why the previous attempt was rejected, if any
}

// InputError reports a rejected answer that may be retried.
type InputError struct {
	Variable  string
	Reason    string
	Remaining int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Variable, e.Reason)
}

// Session walks pending variable declarations and collects answers.
type Session struct {
	vars        []manifest.Variable
	idx         int
	attempts    int
	problem     string
	maxAttempts int
	builder     *answers.Builder
	state       State
	err         error
}

// NewSession starts a session over vars. maxAttempts is the number of
// submissions allowed per variable before the session fails; values below
// one are treated as one.
func NewSession(vars []manifest.Variable, maxAttempts int) *Session {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	s := &Session{
		vars:        vars,
		maxAttempts: maxAttempts,
		builder:     answers.NewBuilder(),
	}
	s.advance()
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Err returns the error that failed the session, if any.
func (s *Session) Err() error { return s.err }

// Current returns the pending question. ok is false once the session is
// done or failed.
func (s *Session) Current() (q Question, ok bool) {
	if s.state != StateAsking {
		return Question{}, false
	}
	return Question{
		Variable: s.vars[s.idx],
		Index:    s.idx,
		Total:    len(s.vars),
		Attempt:  s.attempts + 1,
		Problem:  s.problem,
	}, true
}

// Submit answers the current question with raw input. Empty input selects
// the declared default. It returns nil when the answer is accepted, an
// *InputError when it is rejected but may be retried, and a Validation
// error when the retry budget is exhausted (the session is then failed).
func (s *Session) Submit(input string) error {
	if s.state != StateAsking {
		return fmt.Errorf("session is %s, not asking", s.state)
	}

	v := s.vars[s.idx]
	value, err := Coerce(v, input)
	if err != nil {
		s.attempts++
		s.problem = err.Error()
		if s.attempts >= s.maxAttempts {
			return s.fail(errs.New(errs.KindValidation, "prompt",
				"invalid value for %s after %d attempts: %s", v.Name, s.attempts, err))
		}
		return &InputError{Variable: v.Name, Reason: err.Error(), Remaining: s.maxAttempts - s.attempts}
	}

	s.builder.Put(v.Name, value)
	s.idx++
	s.attempts = 0
	s.problem = ""
	s.advance()
	return nil
}

// Preset answers variables up front, e.g. from --set flags. Presets are
// validated like typed input, but there is no retry: an unknown name or an
// invalid value fails the session immediately. An empty preset is taken
// literally and never replaced by the declared default.
func (s *Session) Preset(values map[string]string) error {
	if s.state == StateFailed {
		return s.err
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v, ok := s.lookup(name)
		if !ok {
			return s.fail(errs.New(errs.KindValidation, "prompt", "unknown variable %q", name))
		}
		value, err := coercePreset(v, values[name])
		if err != nil {
			return s.fail(errs.New(errs.KindValidation, "prompt", "invalid value for %s: %s", name, err))
		}
		s.builder.Put(name, value)
	}

	if s.state == StateAsking {
		s.advance()
	}
	return nil
}

func coercePreset(v manifest.Variable, raw string) (any, error) {
	if strings.TrimSpace(raw) != "" {
		return Coerce(v, raw)
	}
	switch v.Kind() {
	case manifest.TypeSelect, manifest.TypeConfirm:
		return nil, fmt.Errorf("an explicit value is required")
	}
	if v.Required {
		return nil, fmt.Errorf("a value is required")
	}
	return "", nil
}

// AcceptDefaults answers every remaining variable with its default. It
// fails the session if a default does not satisfy its declaration, such as
// a required variable without one.
func (s *Session) AcceptDefaults() error {
	for s.state == StateAsking {
		v := s.vars[s.idx]
		value, err := Coerce(v, "")
		if err != nil {
			return s.fail(errs.New(errs.KindValidation, "prompt",
				"no usable default for %s: %s", v.Name, err))
		}
		s.builder.Put(v.Name, value)
		s.idx++
		s.advance()
	}
	return s.err
}

// Abort ends the session as canceled by the user.
func (s *Session) Abort() error {
	if s.state == StateDone {
		return nil
	}
	return s.fail(errs.New(errs.KindCanceled, "prompt", "user cancelled the operation"))
}

// Answers returns the frozen answer set once the session is done.
func (s *Session) Answers() (answers.Set, error) {
	switch s.state {
	case StateDone:
		return s.builder.Freeze(), nil
	case StateFailed:
		return answers.Set{}, s.err
	default:
		q, _ := s.Current()
		return answers.Set{}, fmt.Errorf("session still waiting for %s", q.Variable.Name)
	}
}

// advance skips variables that already have an answer and marks the
// session done when none remain.
func (s *Session) advance() {
	for s.idx < len(s.vars) && s.builder.Has(s.vars[s.idx].Name) {
		s.idx++
	}
	if s.idx >= len(s.vars) {
		s.state = StateDone
	}
}

func (s *Session) lookup(name string) (manifest.Variable, bool) {
	for _, v := range s.vars {
		if v.Name == name {
			return v, true
		}
	}
	return manifest.Variable{}, false
}

func (s *Session) fail(err error) error {
	s.state = StateFailed
	s.err = err
	return err
}
