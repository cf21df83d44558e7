package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChain(t *testing.T) *Graph {
	t.Helper()
	g := New("sbom-1")
	a, err := g.AddNode(Node{NodeID: "a"})
	require.NoError(t, err)
	b, err := g.AddNode(Node{NodeID: "b"})
	require.NoError(t, err)
	c, err := g.AddNode(Node{NodeID: "c"})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(a, b, DependsOn))
	require.NoError(t, g.AddEdge(b, c, DependsOn))
	return g
}

func TestCheckCycleAcyclic(t *testing.T) {
	g := buildChain(t)
	g.Freeze()

	cyclic, offender := g.CheckCycle()
	assert.False(t, cyclic)
	assert.Nil(t, offender)
}

func TestCheckCycleDetectsBackEdge(t *testing.T) {
	g := buildChain(t)
	c, _ := g.NodeByID("c")
	a, _ := g.NodeByID("a")
	require.NoError(t, g.AddEdge(c, a, DependsOn))
	g.Freeze()

	cyclic, offender := g.CheckCycle()
	assert.True(t, cyclic)
	require.NotNil(t, offender)
	assert.Equal(t, DependsOn, offender.Relationship)
}

func TestCheckCycleIsMemoized(t *testing.T) {
	g := buildChain(t)
	g.Freeze()

	cyclic1, _ := g.CheckCycle()
	cyclic2, _ := g.CheckCycle()
	assert.Equal(t, cyclic1, cyclic2)
	assert.False(t, cyclic1)
}

func TestCheckCycleSelfLoop(t *testing.T) {
	g := New("sbom-1")
	a, _ := g.AddNode(Node{NodeID: "a"})
	require.NoError(t, g.AddEdge(a, a, DependsOn))
	g.Freeze()

	cyclic, offender := g.CheckCycle()
	assert.True(t, cyclic)
	require.NotNil(t, offender)
	assert.Equal(t, a, offender.Source)
	assert.Equal(t, a, offender.Target)
}
