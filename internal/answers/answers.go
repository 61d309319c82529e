// Package answers holds the values a user supplied for a template's
// variables. A Builder collects them while prompting; Freeze turns the
// builder into an immutable Set, which is the only form the renderer accepts.
package answers

import (
	"fmt"
	"maps"
	"slices"
)

// Set is an immutable mapping from variable name to value. Values are
// either string or bool.
type Set struct {
	values map[string]any
}

// Builder accumulates answers before they are frozen.
type Builder struct {
	values map[string]any
	frozen bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{values: make(map[string]any)}
}

// Put records the answer for name. It panics if the builder was frozen,
// since answers must not change once rendering has begun.
func (b *Builder) Put(name string, value any) {
	if b.frozen {
		panic(fmt.Sprintf("answers: Put(%q) after Freeze", name))
	}
	b.values[name] = value
}

// Has reports whether name already has an answer.
func (b *Builder) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Len returns the number of collected answers.
func (b *Builder) Len() int {
	return len(b.values)
}

// Freeze returns the collected answers as an immutable Set. Further calls
// to Put panic.
func (b *Builder) Freeze() Set {
	b.frozen = true
	return Set{values: maps.Clone(b.values)}
}

// FromMap builds a frozen Set directly, mainly for tests and presets.
func FromMap(m map[string]any) Set {
	return Set{values: maps.Clone(m)}
}

// Lookup returns the value for name.
func (s Set) Lookup(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Has reports whether name has an answer.
func (s Set) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// String returns the value for name formatted as text. Missing names
// yield the empty string.
func (s Set) String(name string) string {
	v, ok := s.values[name]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Bool returns the boolean value for name. Non-boolean or missing values
// are false.
func (s Set) Bool(name string) bool {
	b, _ := s.values[name].(bool)
	return b
}

// Names returns the answered variable names in sorted order.
func (s Set) Names() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Len returns the number of answers.
func (s Set) Len() int {
	return len(s.values)
}

// Map returns a copy of the answers suitable as template data.
func (s Set) Map() map[string]any {
	return maps.Clone(s.values)
}

// Env returns the answers as NAME=value strings with the given prefix,
// sorted by name.
func (s Set) Env(prefix string) []string {
	names := s.Names()
	env := make([]string, 0, len(names))
	for _, name := range names {
		env = append(env, prefix+name+"="+s.String(name))
	}
	return env
}
