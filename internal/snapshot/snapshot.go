// Package snapshot dumps a dependency graph to a SQLite database for
// offline inspection. Renames never read the snapshot: the engine
// always rebuilds the graph from the live tree.
package snapshot

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/agentic-research/modmv/internal/graph"
)

const schema = `
CREATE TABLE IF NOT EXISTS modules (
	name TEXT PRIMARY KEY,
	path TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS deps (
	source TEXT NOT NULL,
	target TEXT NOT NULL,
	PRIMARY KEY (source, target)
) WITHOUT ROWID;
`

// Export writes every module and dependency edge of g to dbPath,
// replacing any previous snapshot at that path.
func Export(g *graph.Graph, dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }()

	// Bulk-insert tuning: the snapshot is disposable, durability is
	// the caller's concern.
	if _, err := db.Exec("PRAGMA synchronous = OFF"); err != nil {
		return err
	}
	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		return err
	}
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := db.Exec("DELETE FROM modules; DELETE FROM deps;"); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	insMod, err := tx.Prepare("INSERT INTO modules (name, path) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = insMod.Close() }()

	insDep, err := tx.Prepare("INSERT OR IGNORE INTO deps (source, target) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = insDep.Close() }()

	for _, name := range g.Modules() {
		path, err := g.PathOf(name)
		if err != nil {
			continue
		}
		if _, err := insMod.Exec(string(name), path); err != nil {
			return fmt.Errorf("insert module %s: %w", name, err)
		}
		for _, target := range g.DependenciesOf(name) {
			if _, err := insDep.Exec(string(name), string(target)); err != nil {
				return fmt.Errorf("insert edge %s -> %s: %w", name, target, err)
			}
		}
	}

	return tx.Commit()
}
