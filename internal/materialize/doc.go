// Package materialize writes a rendered template to disk.
//
// Nothing is written when the target already holds a project, unless the
// caller asks to overwrite. Every file goes through a temp file and rename,
// so an interrupted run never leaves a half-written file behind.
package materialize
