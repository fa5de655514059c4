package graph

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/agentic-research/modmv/internal/header"
	"github.com/agentic-research/modmv/internal/module"
)

// Builder assembles a Graph by scanning every source file under every
// configured root. Each Build is a full rescan: a rename mutates the
// very files the graph describes, so nothing is cached between calls.
type Builder struct {
	fs    billy.Filesystem
	roots []string
	log   *log.Logger
}

// NewBuilder returns a Builder over the injected filesystem and roots.
func NewBuilder(fsys billy.Filesystem, roots []string, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{fs: fsys, roots: roots, log: logger}
}

// Build scans the tree and returns the graph of its current state.
func (b *Builder) Build() (*Graph, error) {
	g := New()
	scanned := 0

	for _, root := range b.roots {
		err := util.Walk(b.fs, root, func(p string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || path.Ext(p) != module.Ext {
				return nil
			}
			scanned++
			return b.scanFile(g, filepath.ToSlash(p))
		})
		if err != nil {
			return nil, fmt.Errorf("scan root %s: %w", root, err)
		}
	}

	b.log.Debug("dependency graph built", "files", scanned, "modules", g.Len())
	return g, nil
}

func (b *Builder) scanFile(g *Graph, p string) error {
	content, err := util.ReadFile(b.fs, p)
	if err != nil {
		return fmt.Errorf("read %s: %w", p, err)
	}

	h, _, err := header.Parse(string(content))
	if err != nil {
		// Declaration-less file under a root: not a module, skip.
		b.log.Debug("skipping file without declaration header", "path", p)
		return nil
	}

	g.AddModule(h.Module, p)
	for _, u := range h.Uses {
		g.AddDependency(h.Module, u.Target)
	}
	return nil
}
