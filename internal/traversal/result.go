// Package traversal implements the depth-bounded ancestor/descendant walk
// (C6) over one or more loaded graphs, including re-entry into another
// SBOM's graph through an external reference (C7's resolver is consulted
// here, at the point a traversal crosses the boundary).
package traversal

import "github.com/JimFuller-RedHat/trustify/internal/graph"

// Result is one node reached during a traversal. The root result (the
// node a query matched) has a nil Relationship; every nested result
// carries the relationship connecting it to its parent.
//
// A nested Result has Ancestors populated only when it was produced
// walking Incoming edges, and Descendants only when walking Outgoing,
// mirroring the original collector's per-direction recursion. The root
// result built for a query match carries both walks.
type Result struct {
	Node graph.Node

	Relationship *graph.Relationship
	Ancestors    []*Result
	Descendants  []*Result
}
