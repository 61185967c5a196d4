// Package dag provides a generic topological sort over dependency graphs.
// Any node type exposing its own dependencies can be sorted; the same
// algorithm orders module graphs and task graphs.
package dag

import "fmt"

// HasDependencies is the capability a graph node must provide. The node
// type must be comparable so visited nodes can be tracked in a set.
type HasDependencies[N any] interface {
	comparable
	Dependencies() []N
}

// CycleError is returned when the input graph contains a cycle. Node is
// a node on the detected cycle.
type CycleError struct {
	Node any
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected involving %v", e.Node)
}

// Sort returns the nodes reachable from root in finished (post) order:
// every node appears after all of its transitive dependencies, and each
// node appears exactly once even when reachable via multiple paths.
//
// Cyclic input is rejected with a *CycleError rather than silently
// dropping cycle members from the result.
func Sort[N HasDependencies[N]](root N) ([]N, error) {
	return SortAll([]N{root})
}

// SortAll is Sort over a forest: it linearizes the union of all nodes
// reachable from the given roots into a single consistent order.
func SortAll[N HasDependencies[N]](roots []N) ([]N, error) {
	s := sorter[N]{state: make(map[N]mark)}
	for _, root := range roots {
		if err := s.visit(root); err != nil {
			return nil, err
		}
	}
	return s.finished, nil
}

type mark int

const (
	inProgress mark = iota + 1
	done
)

type sorter[N HasDependencies[N]] struct {
	state    map[N]mark
	finished []N
}

// visit runs a depth-first traversal from n. A node marked inProgress
// that is reached again sits on the current recursion stack, which is
// exactly a back edge.
func (s *sorter[N]) visit(n N) error {
	switch s.state[n] {
	case done:
		return nil
	case inProgress:
		return &CycleError{Node: n}
	}
	s.state[n] = inProgress
	for _, dep := range n.Dependencies() {
		if err := s.visit(dep); err != nil {
			return err
		}
	}
	s.state[n] = done
	s.finished = append(s.finished, n)
	return nil
}
