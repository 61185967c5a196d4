// Package analysis persists the incremental-compilation dependency
// graph: for each compiled source, the sources, jars and products it
// depends on. The compiler-analysis layer feeds the store through an
// explicit Recorder handle threaded down the call chain and reads the
// graph back to decide what to recompile.
package analysis

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver registration
)

// EdgeKind classifies what a source depends on.
type EdgeKind string

const (
	// EdgeSource is a dependency on another source file.
	EdgeSource EdgeKind = "source"
	// EdgeJar is a dependency on a library jar.
	EdgeJar EdgeKind = "jar"
	// EdgeProduct links a source to a class file it produced.
	EdgeProduct EdgeKind = "product"
)

// Store is the persistent dependency graph, backed by SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens or creates a store at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening analysis database: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	// rowid keeps edges in the order they were recorded, which is the
	// order the sink consumed the compile events.
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS edges (
			source TEXT NOT NULL,
			kind   TEXT NOT NULL,
			target TEXT NOT NULL,
			UNIQUE(source, kind, target)
		);
		CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source);
		CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(kind, target);
	`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type edge struct {
	kind   EdgeKind
	target string
}

// Recorder accumulates the dependencies of one source and writes them
// in a single transaction, replacing whatever was recorded for that
// source before. It is a plain value handed to the analysis phase by
// its caller; nothing registers recorders globally.
type Recorder struct {
	store  *Store
	source string
	edges  []edge
}

// Recorder starts recording for source.
func (s *Store) Recorder(source string) *Recorder {
	return &Recorder{store: s, source: source}
}

// DependsOnSource records a dependency on another source file.
func (r *Recorder) DependsOnSource(dep string) {
	r.edges = append(r.edges, edge{kind: EdgeSource, target: dep})
}

// DependsOnJar records a dependency on a library jar.
func (r *Recorder) DependsOnJar(jar string) {
	r.edges = append(r.edges, edge{kind: EdgeJar, target: jar})
}

// Product records a class file produced from the source.
func (r *Recorder) Product(out string) {
	r.edges = append(r.edges, edge{kind: EdgeProduct, target: out})
}

// Flush replaces the stored edges for the recorder's source with the
// accumulated ones, atomically.
func (r *Recorder) Flush() error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx, err := r.store.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM edges WHERE source = ?`, r.source); err != nil {
		return err
	}
	for _, e := range r.edges {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO edges (source, kind, target) VALUES (?, ?, ?)`,
			r.source, string(e.kind), e.target,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DependenciesOf returns the targets of the given kind recorded for
// source, in recording order.
func (s *Store) DependenciesOf(source string, kind EdgeKind) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT target FROM edges WHERE source = ? AND kind = ? ORDER BY rowid`,
		source, string(kind),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

// Sources lists every source with recorded edges.
func (s *Store) Sources() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT DISTINCT source FROM edges ORDER BY source`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var src string
		if err := rows.Scan(&src); err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

// Remove deletes a source from the graph: its own edges and any
// source-edges pointing at it.
func (s *Store) Remove(source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`DELETE FROM edges WHERE source = ? OR (kind = ? AND target = ?)`,
		source, string(EdgeSource), source,
	)
	return err
}
