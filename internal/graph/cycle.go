package graph

// CheckCycle runs a DFS cycle detection over the graph and memoizes the
// result; subsequent calls return the cached verdict without re-walking.
// Ported from the original `acyclic` free function (a DFS with a recursion
// stack), which the cache invokes once per graph at load time (spec §4.4,
// C4 "Cycle Gate") rather than on every query.
//
// A cyclic graph is not an error: spec.md requires traversal over a cyclic
// graph to silently yield zero results while still being counted in
// status.sbom_count. CheckCycle reports the verdict; callers decide what to
// do with it.
func (g *Graph) CheckCycle() (cyclic bool, offender *Edge) {
	g.cycleOnce.Do(func() {
		const (
			white = 0 // unvisited
			gray  = 1 // on the current DFS stack
			black = 2 // fully explored
		)

		color := make([]int8, len(g.nodes))
		var offending *Edge

		var visit func(NodeIndex) bool
		visit = func(n NodeIndex) bool {
			color[n] = gray
			for _, ref := range g.outIdx[n] {
				e := g.edges[ref]
				switch color[e.Target] {
				case gray:
					found := e
					offending = &found
					return true
				case white:
					if visit(e.Target) {
						return true
					}
				}
			}
			color[n] = black
			return false
		}

		for i := range g.nodes {
			if color[i] == white {
				if visit(NodeIndex(i)) {
					break
				}
			}
		}

		g.cyclic = offending != nil
		g.cycleOffender = offending
	})
	return g.cyclic, g.cycleOffender
}
