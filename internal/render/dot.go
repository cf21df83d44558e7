// Package render turns a graph.Graph into renderer-specific output —
// currently only Graphviz DOT, the one renderer name the original
// render(sbom_id, renderer) operation recognizes.
package render

import (
	"fmt"

	"github.com/awalterschulze/gographviz"

	"github.com/JimFuller-RedHat/trustify/internal/graph"
)

// DOT renders g as a Graphviz DOT digraph. Nodes are labelled
// "name@version" (or just name for nodes without a version, such as
// External/Unknown stubs); edges are labelled with their relationship
// name.
func DOT(g *graph.Graph) ([]byte, error) {
	dg := gographviz.NewGraph()
	if err := dg.SetName(quoteID(g.SBOMID())); err != nil {
		return nil, fmt.Errorf("render: set graph name: %w", err)
	}
	if err := dg.SetDir(true); err != nil {
		return nil, fmt.Errorf("render: set directed: %w", err)
	}

	for _, idx := range g.NodeIndices() {
		n, ok := g.NodeWeight(idx)
		if !ok {
			continue
		}
		attrs := map[string]string{"label": quoteLabel(nodeLabel(n))}
		if err := dg.AddNode(dg.Name, nodeID(idx), attrs); err != nil {
			return nil, fmt.Errorf("render: add node %s: %w", n.NodeID, err)
		}
	}

	for _, idx := range g.NodeIndices() {
		for _, e := range g.EdgesDirected(idx, graph.Outgoing) {
			attrs := map[string]string{"label": quoteLabel(e.Relationship.String())}
			if err := dg.AddEdge(nodeID(e.Source), nodeID(e.Target), true, attrs); err != nil {
				return nil, fmt.Errorf("render: add edge %s->%s: %w", nodeID(e.Source), nodeID(e.Target), err)
			}
		}
	}

	return []byte(dg.String()), nil
}

func nodeID(idx graph.NodeIndex) string {
	return fmt.Sprintf("n%d", idx)
}

func nodeLabel(n *graph.Node) string {
	if n.Version == "" {
		return n.Name
	}
	return n.Name + "@" + n.Version
}

func quoteID(s string) string {
	return fmt.Sprintf("%q", s)
}

func quoteLabel(s string) string {
	return fmt.Sprintf("%q", s)
}
