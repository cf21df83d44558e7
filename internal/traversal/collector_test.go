package traversal

import (
	"context"
	"testing"

	"github.com/JimFuller-RedHat/trustify/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain builds a -> b -> c (DependsOn) and freezes it, returning indices.
func chain(t *testing.T) (*graph.Graph, graph.NodeIndex, graph.NodeIndex, graph.NodeIndex) {
	t.Helper()
	g := graph.New("sbom-1")
	a, err := g.AddNode(graph.Node{NodeID: "a", Kind: graph.KindPackage, Name: "a"})
	require.NoError(t, err)
	b, err := g.AddNode(graph.Node{NodeID: "b", Kind: graph.KindPackage, Name: "b"})
	require.NoError(t, err)
	c, err := g.AddNode(graph.Node{NodeID: "c", Kind: graph.KindPackage, Name: "c"})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(a, b, graph.DependsOn))
	require.NoError(t, g.AddEdge(b, c, graph.DependsOn))
	g.Freeze()
	return g, a, b, c
}

func TestCollectDescendantsWalksOutgoing(t *testing.T) {
	g, a, _, _ := chain(t)
	col := NewCollector(GraphSet{"sbom-1": g}, nil, graph.Outgoing, nil)

	results, err := col.Collect(context.Background(), g, a, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].Node.Name)
	require.Len(t, results[0].Descendants, 1)
	assert.Equal(t, "c", results[0].Descendants[0].Node.Name)
	assert.Empty(t, results[0].Descendants[0].Descendants)
}

func TestCollectAncestorsWalksIncoming(t *testing.T) {
	g, _, _, c := chain(t)
	col := NewCollector(GraphSet{"sbom-1": g}, nil, graph.Incoming, nil)

	results, err := col.Collect(context.Background(), g, c, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].Node.Name)
	require.Len(t, results[0].Ancestors, 1)
	assert.Equal(t, "a", results[0].Ancestors[0].Node.Name)
}

func TestCollectDepthZeroYieldsNothing(t *testing.T) {
	g, a, _, _ := chain(t)
	col := NewCollector(GraphSet{"sbom-1": g}, nil, graph.Outgoing, nil)

	results, err := col.Collect(context.Background(), g, a, 0)
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestCollectDepthLimitsRecursion(t *testing.T) {
	g, a, _, _ := chain(t)
	col := NewCollector(GraphSet{"sbom-1": g}, nil, graph.Outgoing, nil)

	results, err := col.Collect(context.Background(), g, a, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Nil(t, results[0].Descendants)
}

func TestCollectRelationshipFilterExcludesButStillVisits(t *testing.T) {
	g := graph.New("sbom-1")
	a, _ := g.AddNode(graph.Node{NodeID: "a", Name: "a"})
	b, _ := g.AddNode(graph.Node{NodeID: "b", Name: "b"})
	require.NoError(t, g.AddEdge(a, b, graph.TestDependencyOf))
	g.Freeze()

	col := NewCollector(GraphSet{"sbom-1": g}, nil, graph.Outgoing, graph.NewRelationshipSet(graph.DependsOn))
	results, err := col.Collect(context.Background(), g, a, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.False(t, col.discovered.visit(g, b), "b is marked discovered even though its edge was filtered out")
}

func TestCollectCyclicGraphTerminatesViaDiscoveredSet(t *testing.T) {
	g := graph.New("sbom-1")
	a, _ := g.AddNode(graph.Node{NodeID: "a", Name: "a"})
	b, _ := g.AddNode(graph.Node{NodeID: "b", Name: "b"})
	require.NoError(t, g.AddEdge(a, b, graph.DependsOn))
	require.NoError(t, g.AddEdge(b, a, graph.DependsOn))
	g.Freeze()

	col := NewCollector(GraphSet{"sbom-1": g}, nil, graph.Outgoing, nil)
	results, err := col.Collect(context.Background(), g, a, 50)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].Node.Name)
	// b -> a closes the cycle; a re-appears as a terminal entry (already
	// discovered) with no further descendants of its own.
	require.Len(t, results[0].Descendants, 1)
	assert.Equal(t, "a", results[0].Descendants[0].Node.Name)
	assert.Empty(t, results[0].Descendants[0].Descendants)
}

type fakeResolver struct {
	sbomID, nodeID string
	ok             bool
}

func (f fakeResolver) Resolve(_ context.Context, _ string) (string, string, bool) {
	return f.sbomID, f.nodeID, f.ok
}

func TestCollectExternalHopsIntoAnotherGraph(t *testing.T) {
	g1 := graph.New("sbom-1")
	a, _ := g1.AddNode(graph.Node{NodeID: "a", Kind: graph.KindPackage, Name: "a"})
	ext, _ := g1.AddNode(graph.Node{NodeID: "ext-ref", Kind: graph.KindExternal})
	require.NoError(t, g1.AddEdge(a, ext, graph.DependsOn))
	g1.Freeze()

	g2 := graph.New("sbom-2")
	target, _ := g2.AddNode(graph.Node{NodeID: "target", Kind: graph.KindPackage, Name: "target"})
	leaf, _ := g2.AddNode(graph.Node{NodeID: "leaf", Kind: graph.KindPackage, Name: "leaf"})
	require.NoError(t, g2.AddEdge(target, leaf, graph.DependsOn))
	g2.Freeze()

	resolver := fakeResolver{sbomID: "sbom-2", nodeID: "target", ok: true}
	col := NewCollector(GraphSet{"sbom-1": g1, "sbom-2": g2}, resolver, graph.Outgoing, nil)

	results, err := col.Collect(context.Background(), g1, a, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, graph.KindExternal, results[0].Node.Kind)
	// The external node stands in for "target"; its children are target's
	// own descendants in the other graph (target itself is not re-emitted).
	require.Len(t, results[0].Descendants, 1)
	assert.Equal(t, "leaf", results[0].Descendants[0].Node.Name)
}

func TestCollectExternalResolveMissYieldsNothing(t *testing.T) {
	g1 := graph.New("sbom-1")
	a, _ := g1.AddNode(graph.Node{NodeID: "a", Kind: graph.KindPackage, Name: "a"})
	ext, _ := g1.AddNode(graph.Node{NodeID: "ext-ref", Kind: graph.KindExternal})
	require.NoError(t, g1.AddEdge(a, ext, graph.DependsOn))
	g1.Freeze()

	col := NewCollector(GraphSet{"sbom-1": g1}, fakeResolver{ok: false}, graph.Outgoing, nil)
	results, err := col.Collect(context.Background(), g1, a, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Descendants)
}
