// Package resolve defines the boundary to the external dependency
// resolution engine. The launcher only synthesizes minimal module
// descriptors and asks the engine to resolve and retrieve them; the
// repository chains and retrieval protocol behind the engine are not
// the launcher's concern.
package resolve

import "context"

// Module identifies one artifact by its coordinates.
type Module struct {
	Organization string
	Name         string
	Revision     string
}

// String renders the coordinates in org#name;revision form, matching
// how the engine reports them.
func (m Module) String() string {
	return m.Organization + "#" + m.Name + ";" + m.Revision
}

// Descriptor is a synthesized module with its direct dependencies. The
// launcher builds one descriptor per artifact kind, each carrying a
// single dependency.
type Descriptor struct {
	Module       Module
	Dependencies []Module
}

// Problem describes one unresolved dependency.
type Problem struct {
	Module  Module
	Message string
}

// Report is the outcome of a resolution.
type Report struct {
	Problems []Problem
}

// HasError reports whether any dependency was left unresolved.
func (r Report) HasError() bool {
	return len(r.Problems) > 0
}

// Service is the external resolve/retrieve engine. Implementations are
// not required to be safe for concurrent use; the update coordinator
// serializes all calls.
type Service interface {
	// Resolve resolves the descriptor's dependency graph. A Report with
	// problems is a resolution failure but not an engine error.
	Resolve(ctx context.Context, desc Descriptor) (Report, error)

	// Retrieve copies a resolved module's artifacts to the destination
	// pattern. Placeholders [artifact], [revision] and [ext] are
	// substituted per artifact file.
	Retrieve(ctx context.Context, m Module, destPattern string) error
}
