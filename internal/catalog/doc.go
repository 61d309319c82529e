// Package catalog enumerates the project templates initt can instantiate.
//
// Templates come from layered sources searched in order: a directory given
// on the command line or in config, the per-user directory
// ~/.initt/templates, and the set embedded in the binary. The first source
// that has a template id wins. Each template is a directory holding a
// template.yaml manifest and an optional files/ tree.
package catalog
