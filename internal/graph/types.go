// Package graph implements the in-memory directed multigraph that backs one
// SBOM's dependency universe (spec §3, §4.1).
//
// A Graph is built with AddNode/AddEdge while in the Building state, then
// Freeze()'d into a read-only, concurrency-safe value that is shared across
// goroutines via the cache (internal/cache). Node identity within a graph is
// its node_id string; NodeIndex is a stable, dense integer handle assigned
// at AddNode time and valid for the graph's lifetime — the Go analogue of
// petgraph's NodeIndex.
package graph

import (
	"strings"
	"sync"
	"time"
)

// NodeIndex is a stable handle to a node within one Graph. Indices are
// dense and assigned in AddNode call order; they are never reused and are
// only comparable within the Graph that issued them.
type NodeIndex int

// invalidIndex marks "not found" without overloading a valid NodeIndex.
const invalidIndex NodeIndex = -1

// Direction selects which edge endpoint to follow during traversal.
// Incoming walks ancestors (edges pointing at the node); Outgoing walks
// descendants (edges pointing away from it) — spec §3 "Direction".
type Direction int

const (
	Outgoing Direction = iota
	Incoming
)

// NodeKind discriminates the three node variants spec §3 describes. Go
// favors a tagged struct over a Rust-style closed enum of variant payloads;
// the Kind field plus kind-specific getters below reproduce the same
// invariants (e.g. PURL/CPE only meaningful on Package nodes).
type NodeKind int

const (
	// KindPackage carries the full package identity: name, version,
	// published timestamp, and multi-valued purl/cpe.
	KindPackage NodeKind = iota

	// KindExternal is a stub pointing at a node in another SBOM, resolved
	// by internal/resolver during traversal.
	KindExternal

	// KindUnknown is a node referenced by an edge but with no backing
	// sbom_node row — materialized by the loader so edges never dangle.
	KindUnknown
)

func (k NodeKind) String() string {
	switch k {
	case KindPackage:
		return "Package"
	case KindExternal:
		return "External"
	case KindUnknown:
		return "Unknown"
	default:
		return "Unknown(invalid)"
	}
}

// Node is one vertex of a PackageGraph. Every node carries SBOMID and
// NodeID regardless of Kind; the remaining fields are only populated for
// the Kind they belong to.
type Node struct {
	SBOMID string
	NodeID string
	Kind   NodeKind

	// Name is set on any kind whose sbom_node row carries one; the loader
	// fills it for Package, External and Unknown nodes alike.
	Name string

	// Package-only fields.
	Version   string
	Published *time.Time
	PURL      []string
	CPE       []string

	// External-only fields.
	ExternalDocumentReference string
	ExternalNodeID            string
}

// HasPURL reports whether any of the node's purls contains s as a
// substring. False for non-Package nodes. Matches spec §4.5/§9: purl/cpe
// matching is an intentionally loose substring match, not parsed equality.
func (n *Node) HasPURL(s string) bool {
	if n.Kind != KindPackage {
		return false
	}
	return containsAny(n.PURL, s)
}

// HasCPE reports whether any of the node's cpes contains s as a substring.
func (n *Node) HasCPE(s string) bool {
	if n.Kind != KindPackage {
		return false
	}
	return containsAny(n.CPE, s)
}

func containsAny(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.Contains(h, needle) {
			return true
		}
	}
	return false
}

// Edge is a directed, labeled relationship between two nodes in the same
// Graph. Parallel edges (same Source/Target, distinct Relationship) are
// legal and distinct — spec §3 "A graph may have parallel edges".
type Edge struct {
	Source       NodeIndex
	Target       NodeIndex
	Relationship Relationship
}

// edgeRef is the internal adjacency-list entry: an index into Graph.edges,
// stored per-node so EdgesDirected can iterate without a full scan.
type edgeRef int

// State is the lifecycle state of a Graph — spec §3 "immutable once
// published to the cache".
type State int

const (
	Building State = iota
	Frozen
)

// Graph is a directed multigraph for exactly one SBOM. It is NOT safe for
// concurrent use while Building; after Freeze() it is read-only and safe
// for concurrent readers, matching the teacher's Graph lifecycle contract
// (build single-writer, then freeze, then share).
type Graph struct {
	sbomID string
	state  State

	nodes   []Node
	byID    map[string]NodeIndex
	edges   []Edge
	outIdx  [][]edgeRef // outIdx[i] = edges whose Source == NodeIndex(i)
	inIdx   [][]edgeRef // inIdx[i]  = edges whose Target == NodeIndex(i)

	cycleOnce     sync.Once
	cyclic        bool
	cycleOffender *Edge
	builtAt       time.Time
}

// New creates an empty Graph for the given sbom_id, ready to accept
// AddNode/AddEdge calls.
func New(sbomID string) *Graph {
	return &Graph{
		sbomID: sbomID,
		byID:   make(map[string]NodeIndex),
	}
}

// SBOMID returns the SBOM this graph was built from.
func (g *Graph) SBOMID() string { return g.sbomID }

// State returns the graph's current lifecycle state.
func (g *Graph) State() State { return g.state }

// IsFrozen reports whether the graph has been published (read-only).
func (g *Graph) IsFrozen() bool { return g.state == Frozen }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// AddNode inserts a node and returns its NodeIndex. Returns
// ErrGraphFrozen if the graph has already been frozen, or
// ErrDuplicateNodeID if node.NodeID already exists in this graph.
func (g *Graph) AddNode(node Node) (NodeIndex, error) {
	if g.state == Frozen {
		return invalidIndex, ErrGraphFrozen
	}
	if _, exists := g.byID[node.NodeID]; exists {
		return invalidIndex, ErrDuplicateNodeID
	}

	idx := NodeIndex(len(g.nodes))
	g.nodes = append(g.nodes, node)
	g.byID[node.NodeID] = idx
	g.outIdx = append(g.outIdx, nil)
	g.inIdx = append(g.inIdx, nil)
	return idx, nil
}

// AddEdge inserts a directed edge labeled rel from source to target. Both
// indices must have been returned by AddNode on this same graph. Parallel
// edges between the same pair with distinct labels are permitted and
// inserted independently.
func (g *Graph) AddEdge(source, target NodeIndex, rel Relationship) error {
	if g.state == Frozen {
		return ErrGraphFrozen
	}
	if !g.validIndex(source) || !g.validIndex(target) {
		return ErrUnknownNodeIndex
	}

	ref := edgeRef(len(g.edges))
	g.edges = append(g.edges, Edge{Source: source, Target: target, Relationship: rel})
	g.outIdx[source] = append(g.outIdx[source], ref)
	g.inIdx[target] = append(g.inIdx[target], ref)
	return nil
}

func (g *Graph) validIndex(i NodeIndex) bool {
	return i >= 0 && int(i) < len(g.nodes)
}

// Freeze transitions the graph to read-only. Irreversible. Safe to call
// more than once (idempotent).
func (g *Graph) Freeze() {
	if g.state == Frozen {
		return
	}
	g.state = Frozen
	g.builtAt = time.Now()
}

// BuiltAt returns the time Freeze was called, or the zero Time if the
// graph has not been frozen.
func (g *Graph) BuiltAt() time.Time { return g.builtAt }

// NodeIndices returns every node index in insertion order. Stable for the
// graph's lifetime (spec §4.1).
func (g *Graph) NodeIndices() []NodeIndex {
	out := make([]NodeIndex, len(g.nodes))
	for i := range g.nodes {
		out[i] = NodeIndex(i)
	}
	return out
}

// NodeWeight returns the node at idx, or (nil, false) if idx is out of
// range. The returned pointer aliases the graph's internal storage and
// must not be mutated — the graph is meant to be immutable post-freeze.
func (g *Graph) NodeWeight(idx NodeIndex) (*Node, bool) {
	if !g.validIndex(idx) {
		return nil, false
	}
	return &g.nodes[idx], true
}

// NodeByID looks up a node by its node_id, returning its index. This is
// the lookup the loader uses to resolve relationship rows (which reference
// node_id strings) into NodeIndex handles.
func (g *Graph) NodeByID(nodeID string) (NodeIndex, bool) {
	idx, ok := g.byID[nodeID]
	return idx, ok
}

// EdgesDirected returns every edge incident to idx in direction dir, in
// the graph's natural (insertion) order — spec §4.6 "Tie-breaking and
// ordering".
func (g *Graph) EdgesDirected(idx NodeIndex, dir Direction) []Edge {
	if !g.validIndex(idx) {
		return nil
	}
	var refs []edgeRef
	if dir == Outgoing {
		refs = g.outIdx[idx]
	} else {
		refs = g.inIdx[idx]
	}
	out := make([]Edge, len(refs))
	for i, r := range refs {
		out[i] = g.edges[r]
	}
	return out
}
