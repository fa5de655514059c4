// Package module defines module identity and the path↔name mapping.
//
// A module is one source file. Its name is derived from the file's path
// relative to the source root that contains it: path separators become
// name segments and hyphens become underscores, so "src/my-pkg/a.src"
// under root "src" is the module "my_pkg.a". The mapping is reversible;
// paths containing literal underscores are outside the convention.
package module

import (
	"path"
	"strings"
)

// Ext is the extension of declaration-bearing source files.
// Anything else is treated as a plain resource.
const Ext = ".src"

// Name is a dot-separated hierarchical module name, e.g. "pkg.util.a".
type Name string

// Segments returns the name split on the segment separator.
func (n Name) Segments() []string {
	return strings.Split(string(n), ".")
}

// Flat returns the flattened interop prefix of the name: segment
// separators collapsed to underscores. Used for cross-reference
// identifiers outside the declaration header ("pkg.a" → "pkg_a").
func (n Name) Flat() string {
	return strings.ReplaceAll(string(n), ".", "_")
}

// FromRelPath converts a root-relative file path into a module name.
func FromRelPath(rel string) Name {
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	segs := strings.Split(rel, "/")
	for i, s := range segs {
		segs[i] = strings.ReplaceAll(s, "-", "_")
	}
	return Name(strings.Join(segs, "."))
}

// RelPath converts a module name back into a root-relative file path,
// without extension. Inverse of FromRelPath for paths that follow the
// escaping convention.
func (n Name) RelPath() string {
	segs := n.Segments()
	for i, s := range segs {
		segs[i] = strings.ReplaceAll(s, "_", "-")
	}
	return strings.Join(segs, "/")
}
