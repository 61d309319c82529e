// Package cli defines the Cobra command tree for the initt CLI. The root
// command is the interactive project wizard; list, lint and config are
// subcommands. Commands delegate to internal packages for the work and
// only handle flag parsing, I/O formatting and user interaction.
package cli
