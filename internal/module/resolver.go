package module

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NoRootError is returned when no configured source root is a prefix of
// the path being resolved.
type NoRootError struct {
	Path string
}

func (e *NoRootError) Error() string {
	return fmt.Sprintf("no source root contains %s", e.Path)
}

// Resolver maps file paths to module names against a fixed set of
// source roots. It is pure: it never touches the filesystem, so it works
// for paths that do not exist yet (the rename destination).
type Resolver struct {
	roots []string
}

// NewResolver builds a Resolver over the given root directories.
func NewResolver(roots []string) *Resolver {
	norm := make([]string, len(roots))
	for i, r := range roots {
		norm[i] = normalize(r)
	}
	return &Resolver{roots: norm}
}

// Resolve converts an absolute or workspace-relative file path into a
// module name. Root-prefix comparison is case-insensitive. When several
// roots contain the path (nested roots), the one leaving the shortest
// remainder wins, that being the deepest containing root.
func (r *Resolver) Resolve(p string) (Name, error) {
	norm := normalize(p)
	cmp := strings.ToLower(norm)

	best := ""
	found := false
	for _, root := range r.roots {
		prefix := strings.ToLower(root) + "/"
		if !strings.HasPrefix(cmp, prefix) {
			continue
		}
		rem := norm[len(prefix):]
		if rem == "" {
			continue
		}
		if !found || len(rem) < len(best) {
			best = rem
			found = true
		}
	}
	if !found {
		return "", &NoRootError{Path: p}
	}
	return FromRelPath(best), nil
}

// PathFor returns the canonical source-file path of name under root.
func (r *Resolver) PathFor(root string, name Name) string {
	return normalize(root) + "/" + name.RelPath() + Ext
}

// IsRoot reports whether dir is one of the configured source roots.
// Used as the boundary condition when pruning emptied directories.
func (r *Resolver) IsRoot(dir string) bool {
	cmp := strings.ToLower(normalize(dir))
	for _, root := range r.roots {
		if strings.ToLower(root) == cmp {
			return true
		}
	}
	return false
}

// normalize converts p to forward slashes and drops any trailing slash.
func normalize(p string) string {
	p = filepath.ToSlash(p)
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}
