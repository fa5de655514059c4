package snapshot

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/modmv/internal/graph"
)

func buildGraph() *graph.Graph {
	g := graph.New()
	g.AddModule("pkg.a", "/src/pkg/a.src")
	g.AddModule("pkg.b", "/src/pkg/b.src")
	g.AddDependency("pkg.b", "pkg.a")
	return g
}

func TestExport_WritesModulesAndEdges(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "graph.db")
	require.NoError(t, Export(buildGraph(), dbPath))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var modules int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM modules").Scan(&modules))
	assert.Equal(t, 2, modules)

	var path string
	require.NoError(t, db.QueryRow("SELECT path FROM modules WHERE name = ?", "pkg.a").Scan(&path))
	assert.Equal(t, "/src/pkg/a.src", path)

	var source, target string
	require.NoError(t, db.QueryRow("SELECT source, target FROM deps").Scan(&source, &target))
	assert.Equal(t, "pkg.b", source)
	assert.Equal(t, "pkg.a", target)
}

func TestExport_OverwritesPreviousSnapshot(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "graph.db")
	require.NoError(t, Export(buildGraph(), dbPath))

	small := graph.New()
	small.AddModule("solo", "/src/solo.src")
	require.NoError(t, Export(small, dbPath))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var modules, edges int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM modules").Scan(&modules))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM deps").Scan(&edges))
	assert.Equal(t, 1, modules)
	assert.Zero(t, edges)
}
