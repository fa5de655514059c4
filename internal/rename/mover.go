// Package rename moves source files and directories and keeps the rest
// of the workspace pointing at them: every direct dependent of a moved
// module is rewritten to the module's new identity.
package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/agentic-research/modmv/internal/module"
)

// ErrInvalidArgument is returned for blank paths or a nonexistent
// source path, always before any side effect.
var ErrInvalidArgument = errors.New("invalid argument")

// Mover is the top-level rename entry point. It owns no state beyond
// its collaborators; every Move builds its own graph from the
// pre-rename tree.
type Mover struct {
	fs       billy.Filesystem
	roots    []string
	resolver *module.Resolver
	log      *log.Logger
}

// NewMover wires a Mover over the injected filesystem and source roots.
func NewMover(fsys billy.Filesystem, roots []string, logger *log.Logger) *Mover {
	if logger == nil {
		logger = log.Default()
	}
	return &Mover{
		fs:       fsys,
		roots:    roots,
		resolver: module.NewResolver(roots),
		log:      logger,
	}
}

// Move renames oldPath (a file or a directory) to newPath and rewrites
// every direct dependent of the renamed modules. It returns the sorted,
// deduplicated, forward-slash-normalized paths of every file modified,
// including the destination itself.
//
// Files inside a directory are processed sequentially; a failure midway
// leaves earlier files moved and rewritten. There is no rollback.
func (m *Mover) Move(oldPath, newPath string) ([]string, error) {
	if strings.TrimSpace(oldPath) == "" || strings.TrimSpace(newPath) == "" {
		return nil, fmt.Errorf("%w: blank path", ErrInvalidArgument)
	}
	info, err := m.fs.Stat(oldPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidArgument, oldPath)
	}

	// Worklist of (old, new) file pairs; directories are never renamed
	// directly, their contents are. An empty subdirectory contributes
	// nothing and is silently dropped at the destination.
	var pairs [][2]string
	if info.IsDir() {
		oldDir := withSlash(filepath.ToSlash(oldPath))
		newDir := withSlash(filepath.ToSlash(newPath))
		err := util.Walk(m.fs, oldPath, func(p string, fi fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return nil
			}
			p = filepath.ToSlash(p)
			pairs = append(pairs, [2]string{p, newDir + strings.TrimPrefix(p, oldDir)})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("enumerate %s: %w", oldPath, err)
		}
	} else {
		pairs = append(pairs, [2]string{oldPath, newPath})
	}

	seen := make(map[string]struct{})
	for _, pair := range pairs {
		modified, err := m.renameFile(pair[0], pair[1])
		if err != nil {
			return nil, err
		}
		for _, p := range modified {
			seen[filepath.ToSlash(p)] = struct{}{}
		}
	}

	result := make([]string, 0, len(seen))
	for p := range seen {
		result = append(result, p)
	}
	sort.Strings(result)
	return result, nil
}

func withSlash(p string) string {
	if !strings.HasSuffix(p, "/") {
		return p + "/"
	}
	return p
}
