package rename

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5/util"

	"github.com/agentic-research/modmv/internal/graph"
	"github.com/agentic-research/modmv/internal/header"
	"github.com/agentic-research/modmv/internal/module"
	"github.com/agentic-research/modmv/internal/rewrite"
)

// renameFile renames a single file and rewrites its dependents.
//
// Order of operations, chosen to keep every read and transformation
// ahead of the first write:
//
//  1. plain resources (and declaration-less sources) just move
//  2. old module name from the current header, new name from the
//     destination path; a resolution failure aborts before mutation
//  3. graph build from the pre-rename tree, dependents rewritten in
//     memory, no writes yet
//  4. physical move, creating destination directories
//  5. emptied ancestors of the old location pruned up to a root
//  6. moved file's own header updated at the destination
//  7. held dependent contents written out
//
// A failure once step 4 has begun leaves prior steps committed; surfacing
// the error is all the recovery offered.
func (m *Mover) renameFile(oldPath, newPath string) ([]string, error) {
	if path.Ext(filepath.ToSlash(oldPath)) != module.Ext {
		return m.moveResource(oldPath, newPath)
	}

	raw, err := util.ReadFile(m.fs, oldPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", oldPath, err)
	}

	h, _, err := header.Parse(string(raw))
	if err != nil {
		// A .src without a declaration header moves like a resource.
		return m.moveResource(oldPath, newPath)
	}
	oldName := h.Module

	newName, err := m.resolver.Resolve(newPath)
	if err != nil {
		return nil, err
	}

	g, err := graph.NewBuilder(m.fs, m.roots, m.log).Build()
	if err != nil {
		return nil, err
	}

	pending := make(map[string]string)
	for _, depPath := range g.DependentPaths(oldName) {
		if depPath == filepath.ToSlash(oldPath) {
			continue
		}
		content, err := util.ReadFile(m.fs, depPath)
		if err != nil {
			return nil, fmt.Errorf("read dependent %s: %w", depPath, err)
		}
		if rewritten, changed := rewrite.Rewrite(string(content), oldName, newName); changed {
			pending[depPath] = rewritten
		}
	}

	m.log.Debug("renaming module",
		"old", oldName, "new", newName, "dependents", len(pending))

	if err := m.movePhysical(oldPath, newPath); err != nil {
		return nil, err
	}
	m.pruneEmptyDirs(path.Dir(filepath.ToSlash(oldPath)))

	moved := strings.Replace(string(raw), string(oldName), string(newName), 1)
	if err := m.writeFile(newPath, []byte(moved)); err != nil {
		return nil, err
	}

	modified := make([]string, 0, len(pending)+1)
	for p := range pending {
		modified = append(modified, p)
	}
	sort.Strings(modified)
	for _, p := range modified {
		if err := m.writeFile(p, []byte(pending[p])); err != nil {
			return nil, err
		}
	}
	return append(modified, newPath), nil
}

// moveResource moves a non-module file: no graph, no rewriting, just
// the physical move and the usual pruning of its emptied ancestors.
func (m *Mover) moveResource(oldPath, newPath string) ([]string, error) {
	if err := m.movePhysical(oldPath, newPath); err != nil {
		return nil, err
	}
	m.pruneEmptyDirs(path.Dir(filepath.ToSlash(oldPath)))
	return []string{newPath}, nil
}

// movePhysical moves a file, creating missing destination directories.
func (m *Mover) movePhysical(oldPath, newPath string) error {
	dir := path.Dir(filepath.ToSlash(newPath))
	if err := m.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	if err := m.fs.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("move %s to %s: %w", oldPath, newPath, err)
	}
	return nil
}

// pruneEmptyDirs walks upward from dir removing each now-empty
// directory, stopping at the first non-empty one or at a source root.
func (m *Mover) pruneEmptyDirs(dir string) {
	for {
		if dir == "" || dir == "." || dir == "/" || m.resolver.IsRoot(dir) {
			return
		}
		entries, err := m.fs.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := m.fs.Remove(dir); err != nil {
			return
		}
		dir = path.Dir(dir)
	}
}

// writeFile replaces path's content atomically: temp file in the same
// directory, then rename over the target.
func (m *Mover) writeFile(p string, data []byte) error {
	dir := path.Dir(filepath.ToSlash(p))
	tmp, err := m.fs.TempFile(dir, ".modmv-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = m.fs.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = m.fs.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := m.fs.Rename(tmpName, p); err != nil {
		_ = m.fs.Remove(tmpName)
		return fmt.Errorf("rename temp to %s: %w", p, err)
	}
	return nil
}
