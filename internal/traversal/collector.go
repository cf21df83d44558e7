package traversal

import (
	"context"

	"github.com/JimFuller-RedHat/trustify/internal/graph"
)

// GraphSet is every loaded graph a traversal may need to cross into,
// keyed by sbom_id. It is the Go shape of the original's
// &[(String, Arc<PackageGraph>)] slice — a map here since external hops
// always look a graph up by sbom_id rather than scanning.
type GraphSet map[string]*graph.Graph

// Resolver resolves an external reference node's node_id to the
// (sbom_id, node_id) pair it points at in another SBOM's graph. Satisfied
// by internal/resolver.Resolver; kept as an interface here so traversal
// does not import the storage layer.
type Resolver interface {
	Resolve(ctx context.Context, externalNodeRef string) (sbomID, nodeID string, ok bool)
}

// Collector walks a fixed direction (Incoming for ancestors, Outgoing for
// descendants) from a starting node, stopping at a depth budget, a
// relationship filter, or a node it has already discovered. One Collector
// (and the discoveredTracker it owns) is used for exactly one top-level
// ancestor-or-descendant call; diamond dependencies collapse to their
// first-discovered path.
type Collector struct {
	graphs        GraphSet
	resolver      Resolver
	direction     graph.Direction
	relationships graph.RelationshipSet
	discovered    *discoveredTracker
}

// NewCollector builds a Collector for one direction of one retrieve call.
func NewCollector(graphs GraphSet, resolver Resolver, direction graph.Direction, relationships graph.RelationshipSet) *Collector {
	return &Collector{
		graphs:        graphs,
		resolver:      resolver,
		direction:     direction,
		relationships: relationships,
		discovered:    newDiscoveredTracker(),
	}
}

// Collect walks up to depth hops from (g, node) in the collector's
// direction. Returns nil (not an error) when depth is exhausted or the
// node was already discovered — both are "nothing more to contribute"
// outcomes, not failures.
func (c *Collector) Collect(ctx context.Context, g *graph.Graph, node graph.NodeIndex, depth uint) ([]*Result, error) {
	if depth == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !c.discovered.visit(g, node) {
		return nil, nil
	}

	n, ok := g.NodeWeight(node)
	if !ok {
		return nil, nil
	}

	if n.Kind == graph.KindExternal {
		return c.collectExternal(ctx, n, depth)
	}
	return c.collectGraph(ctx, g, node, depth)
}

// collectExternal resolves an External node into another SBOM's graph and
// continues the walk there at the same depth and direction, sharing this
// Collector's discovered set. A resolution miss (unknown reference, graph
// not loaded, node not found in it) silently contributes nothing, matching
// the original's "log and return None" behavior.
func (c *Collector) collectExternal(ctx context.Context, n *graph.Node, depth uint) ([]*Result, error) {
	sbomID, nodeID, ok := c.resolver.Resolve(ctx, n.NodeID)
	if !ok {
		return nil, nil
	}
	externalGraph, ok := c.graphs[sbomID]
	if !ok {
		return nil, nil
	}
	externalIdx, ok := externalGraph.NodeByID(nodeID)
	if !ok {
		return nil, nil
	}
	return c.collectGraph(ctx, externalGraph, externalIdx, depth)
}

// CollectPair walks both directions from one seed node, sharing a single
// discoveredTracker between the ancestor and descendant sub-walks. spec's
// discovered-set is shared across the *entire* retrieve call for one seed —
// "a node visited on the ancestor side is also suppressed on the descendant
// side" — so the two walks cannot each get their own tracker the way two
// independent NewCollector calls would give them.
//
// The seed node itself is marked visited once, before either walk starts,
// rather than by each walk's own entry call: Collect's usual self-visit
// would otherwise make the second direction observe the seed as
// already-discovered (from the first direction's walk) and return nothing.
func CollectPair(ctx context.Context, graphs GraphSet, resolver Resolver, relationships graph.RelationshipSet,
	g *graph.Graph, node graph.NodeIndex, ancestorDepth, descendantDepth uint) (ancestors, descendants []*Result, err error) {

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	tracker := newDiscoveredTracker()
	tracker.visit(g, node)

	ancestorCollector := &Collector{graphs: graphs, resolver: resolver, direction: graph.Incoming, relationships: relationships, discovered: tracker}
	descendantCollector := &Collector{graphs: graphs, resolver: resolver, direction: graph.Outgoing, relationships: relationships, discovered: tracker}

	if ancestorDepth > 0 {
		ancestors, err = ancestorCollector.collectGraph(ctx, g, node, ancestorDepth)
		if err != nil {
			return nil, nil, err
		}
	}
	if descendantDepth > 0 {
		descendants, err = descendantCollector.collectGraph(ctx, g, node, descendantDepth)
		if err != nil {
			return ancestors, nil, err
		}
	}
	return ancestors, descendants, nil
}

// collectGraph expands every edge incident to node in the collector's
// direction. Recursion into a neighbor happens before the relationship
// filter is applied, so a node reached only through a filtered-out
// relationship is still marked discovered — a rejected edge still "spends"
// that node, matching the reference collector's order of operations.
func (c *Collector) collectGraph(ctx context.Context, g *graph.Graph, node graph.NodeIndex, depth uint) ([]*Result, error) {
	edges := g.EdgesDirected(node, c.direction)
	results := make([]*Result, 0, len(edges))

	for _, e := range edges {
		var neighbor graph.NodeIndex
		if c.direction == graph.Incoming {
			neighbor = e.Source
		} else {
			neighbor = e.Target
		}

		children, err := c.Collect(ctx, g, neighbor, depth-1)
		if err != nil {
			return results, err
		}

		if !c.relationships.Accepts(e.Relationship) {
			continue
		}

		neighborNode, ok := g.NodeWeight(neighbor)
		if !ok {
			continue
		}

		rel := e.Relationship
		result := &Result{Node: *neighborNode, Relationship: &rel}
		if c.direction == graph.Incoming {
			result.Ancestors = children
		} else {
			result.Descendants = children
		}
		results = append(results, result)
	}

	return results, nil
}
