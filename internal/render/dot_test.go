package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JimFuller-RedHat/trustify/internal/graph"
)

func TestDOTRendersNodesAndEdges(t *testing.T) {
	g := graph.New("sbom-1")
	a, err := g.AddNode(graph.Node{NodeID: "pkg-a", Kind: graph.KindPackage, Name: "a", Version: "1.0.0"})
	require.NoError(t, err)
	b, err := g.AddNode(graph.Node{NodeID: "pkg-b", Kind: graph.KindPackage, Name: "b", Version: "2.0.0"})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(a, b, graph.DependsOn))
	g.Freeze()

	out, err := DOT(g)
	require.NoError(t, err)

	dot := string(out)
	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, "a@1.0.0")
	assert.Contains(t, dot, "b@2.0.0")
	assert.Contains(t, dot, "DependsOn")
}

func TestDOTRendersNodeWithoutVersion(t *testing.T) {
	g := graph.New("sbom-1")
	_, err := g.AddNode(graph.Node{NodeID: "ext-1", Kind: graph.KindExternal, Name: "external-thing"})
	require.NoError(t, err)
	g.Freeze()

	out, err := DOT(g)
	require.NoError(t, err)
	assert.Contains(t, string(out), "external-thing")
	assert.NotContains(t, string(out), "external-thing@")
}
