package graph

import "errors"

// Sentinel errors for graph construction. Mirrors the error surface of a
// petgraph-style builder: invalid input is rejected eagerly at AddNode /
// AddEdge time rather than discovered later during traversal.
var (
	// ErrGraphFrozen is returned by AddNode/AddEdge once Freeze has been
	// called. A PackageGraph is immutable once published to the cache
	// (spec invariant); Freeze is the boundary that enforces it in-process.
	ErrGraphFrozen = errors.New("graph: frozen, no further mutation allowed")

	// ErrDuplicateNodeID is returned when AddNode is called twice with the
	// same node_id within one graph. node_id is unique within a graph.
	ErrDuplicateNodeID = errors.New("graph: duplicate node_id")

	// ErrUnknownNodeIndex is returned by AddEdge when either endpoint is a
	// NodeIndex that was never returned by AddNode on this graph. Lookups
	// (NodeWeight, EdgesDirected) report an unknown index as ok=false or an
	// empty result instead.
	ErrUnknownNodeIndex = errors.New("graph: unknown node index")

	// ErrDanglingEdge names an edge that references a node_id with no
	// corresponding node in the same graph. No function in this module
	// returns it: the loader materializes an Unknown node for such an
	// endpoint, and AddEdge reports bad indices as ErrUnknownNodeIndex.
	ErrDanglingEdge = errors.New("graph: edge references node absent from graph")
)
