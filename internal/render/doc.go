// Package render turns a catalog template plus a frozen answer set into
// in-memory rendered files.
//
// Files ending in .tmpl are executed with text/template and lose the
// suffix; every other file is copied byte for byte. Each path segment is a
// template too, so "{{.project_name}}/main.go.tmpl" lands at "demo/main.go".
// Nothing is written to disk here; see the materialize package.
package render
