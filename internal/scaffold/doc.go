// Package scaffold creates a project from a template. It powers the initt
// wizard: it checks that the template supports this initt version, renders
// it with the collected answers, writes the result to the target directory
// and then runs the template's post-creation hooks.
package scaffold
