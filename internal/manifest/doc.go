// Package manifest handles parsing and validation of template manifests
// (template.yaml). A manifest declares a template's identity, the variables
// the wizard asks for, conditional file rules, extra directories, and
// post-create hooks. Manifests are validated against an embedded JSON Schema
// before they are trusted.
package manifest
