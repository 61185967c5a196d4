package analysis

import "github.com/isabella232/sbt-zero-seven/internal/dag"

// Node is one source file in the dependency graph, exposing its
// source-to-source dependencies for topological ordering.
type Node struct {
	Path string

	deps []*Node
}

// Dependencies returns the sources this node depends on.
func (n *Node) Dependencies() []*Node { return n.deps }

// Graph materializes the source-to-source dependency graph. Targets
// without recorded edges of their own still get a node, so leaves sort
// first.
func (s *Store) Graph() ([]*Node, error) {
	s.mu.Lock()
	rows, err := s.db.Query(
		`SELECT source, target FROM edges WHERE kind = ? ORDER BY rowid`,
		string(EdgeSource),
	)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	type pair struct{ source, target string }
	var pairs []pair
	for rows.Next() {
		var p pair
		if err := rows.Scan(&p.source, &p.target); err != nil {
			rows.Close()
			s.mu.Unlock()
			return nil, err
		}
		pairs = append(pairs, p)
	}
	closeErr := rows.Err()
	rows.Close()
	s.mu.Unlock()
	if closeErr != nil {
		return nil, closeErr
	}

	sources, err := s.Sources()
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*Node)
	get := func(path string) *Node {
		if n, ok := nodes[path]; ok {
			return n
		}
		n := &Node{Path: path}
		nodes[path] = n
		return n
	}
	var roots []*Node
	for _, src := range sources {
		roots = append(roots, get(src))
	}
	for _, p := range pairs {
		from := get(p.source)
		from.deps = append(from.deps, get(p.target))
	}
	return roots, nil
}

// CompileOrder returns every known source in dependency-first order.
// A cyclic graph is an error (*dag.CycleError), not a truncated order.
func (s *Store) CompileOrder() ([]string, error) {
	roots, err := s.Graph()
	if err != nil {
		return nil, err
	}
	sorted, err := dag.SortAll(roots)
	if err != nil {
		return nil, err
	}
	order := make([]string, len(sorted))
	for i, n := range sorted {
		order[i] = n.Path
	}
	return order, nil
}
