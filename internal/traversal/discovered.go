package traversal

import (
	"sync"

	"github.com/JimFuller-RedHat/trustify/internal/graph"
)

// discoveredTracker records which (graph, node) pairs one seed's traversal
// has already visited, across every graph the traversal touches —
// including external-reference hops into other SBOMs' graphs. CollectPair
// shares one tracker between a seed's ancestor and descendant Collectors
// (a Collector from NewCollector owns its own) so a diamond-shaped
// dependency is only expanded once.
type discoveredTracker struct {
	mu   sync.Mutex
	seen map[*graph.Graph]map[graph.NodeIndex]struct{}
}

func newDiscoveredTracker() *discoveredTracker {
	return &discoveredTracker{seen: make(map[*graph.Graph]map[graph.NodeIndex]struct{})}
}

// visit marks (g, n) as seen and reports whether it was the first visit.
func (t *discoveredTracker) visit(g *graph.Graph, n graph.NodeIndex) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	m, ok := t.seen[g]
	if !ok {
		m = make(map[graph.NodeIndex]struct{})
		t.seen[g] = m
	}
	if _, already := m[n]; already {
		return false
	}
	m[n] = struct{}{}
	return true
}
