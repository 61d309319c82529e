package catalog

import (
	"embed"
	"io/fs"
)

//go:embed all:builtin
var builtinFS embed.FS

// BuiltinSourceName labels templates that ship inside the binary.
const BuiltinSourceName = "builtin"

// Builtin returns the Source of the templates embedded in the binary.
func Builtin() Source {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return Source{Name: BuiltinSourceName, FS: sub}
}
