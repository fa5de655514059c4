// Package graph builds and queries the dependency graph of a workspace:
// which module lives at which path, what each module declares as
// dependencies, and, inverted, who depends on whom.
package graph

import (
	"errors"
	"sort"

	"github.com/RoaringBitmap/roaring"
	"github.com/agentic-research/modmv/internal/module"
)

// ErrNotFound is returned when a module name is absent from the graph.
var ErrNotFound = errors.New("module not found")

// Graph is an immutable-once-built snapshot of the dependency structure.
// It is owned by the single operation that built it; renames mutate the
// tree, so nothing here survives across operations.
//
// Module names are interned to uint32 ids and the edge sets are kept as
// roaring bitmaps, so dependent lookups stay cheap on large trees.
type Graph struct {
	ids   map[module.Name]uint32
	byID  []module.Name
	paths map[module.Name]string

	forward  map[uint32]*roaring.Bitmap // module → targets it depends on
	inverted map[uint32]*roaring.Bitmap // module → modules depending on it
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		ids:      make(map[module.Name]uint32),
		paths:    make(map[module.Name]string),
		forward:  make(map[uint32]*roaring.Bitmap),
		inverted: make(map[uint32]*roaring.Bitmap),
	}
}

func (g *Graph) intern(n module.Name) uint32 {
	if id, ok := g.ids[n]; ok {
		return id
	}
	id := uint32(len(g.byID))
	g.ids[n] = id
	g.byID = append(g.byID, n)
	return id
}

// AddModule records that module n lives at path.
func (g *Graph) AddModule(n module.Name, path string) {
	g.intern(n)
	g.paths[n] = path
}

// AddDependency records a (from depends-on to) edge and its inversion.
// The target need not be a scanned module; edges to unknown names are
// kept so they invert correctly once the target is scanned.
func (g *Graph) AddDependency(from, to module.Name) {
	f := g.intern(from)
	t := g.intern(to)

	fwd, ok := g.forward[f]
	if !ok {
		fwd = roaring.New()
		g.forward[f] = fwd
	}
	fwd.Add(t)

	inv, ok := g.inverted[t]
	if !ok {
		inv = roaring.New()
		g.inverted[t] = inv
	}
	inv.Add(f)
}

// PathOf returns the file path of module n.
func (g *Graph) PathOf(n module.Name) (string, error) {
	p, ok := g.paths[n]
	if !ok {
		return "", ErrNotFound
	}
	return p, nil
}

// DependentsOf returns the names of modules that directly depend on n,
// sorted. One hop only: transitive dependents through re-exports are
// never included.
func (g *Graph) DependentsOf(n module.Name) []module.Name {
	id, ok := g.ids[n]
	if !ok {
		return nil
	}
	return g.namesOf(g.inverted[id])
}

// DependentPaths returns the file paths of the direct dependents of n,
// sorted. Dependents without a scanned path are skipped.
func (g *Graph) DependentPaths(n module.Name) []string {
	var paths []string
	for _, dep := range g.DependentsOf(n) {
		if p, err := g.PathOf(dep); err == nil {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// DependenciesOf returns the names n declares dependencies on, sorted.
func (g *Graph) DependenciesOf(n module.Name) []module.Name {
	id, ok := g.ids[n]
	if !ok {
		return nil
	}
	return g.namesOf(g.forward[id])
}

// Modules returns every scanned module name, sorted.
func (g *Graph) Modules() []module.Name {
	names := make([]module.Name, 0, len(g.paths))
	for n := range g.paths {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Len is the number of scanned modules.
func (g *Graph) Len() int {
	return len(g.paths)
}

func (g *Graph) namesOf(bm *roaring.Bitmap) []module.Name {
	if bm == nil || bm.IsEmpty() {
		return nil
	}
	names := make([]module.Name, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		names = append(names, g.byID[it.Next()])
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
