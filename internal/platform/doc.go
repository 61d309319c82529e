// Package platform hides the operating-system differences initt runs into
// while writing a project: permission bits, inspecting the target
// directory, and the shell used to run post-creation hooks. Windows has no
// Unix permission bits and runs hooks through cmd.exe.
package platform
