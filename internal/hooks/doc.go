// Package hooks runs a template's post-creation commands inside the newly
// created project. A failing hook is reported and the rest still run.
package hooks
