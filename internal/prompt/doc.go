// Package prompt collects answers for a template's variables.
//
// Session is an explicit state machine over the pending variable
// declarations: each Submit either records an answer and moves on, or
// records a failed attempt against the per-variable retry budget. Session
// never touches a terminal, so it is driven directly in tests and by the
// line-oriented Console for real users.
package prompt
