package query

import (
	"testing"

	"github.com/JimFuller-RedHat/trustify/internal/graph"
	"github.com/stretchr/testify/assert"
)

func TestComponentReferenceMatches(t *testing.T) {
	pkg := &graph.Node{
		Kind:   graph.KindPackage,
		NodeID: "node-1",
		Name:   "openssl",
		PURL:   []string{"pkg:rpm/openssl@3.0.0"},
		CPE:    []string{"cpe:/a:openssl:openssl:3.0.0"},
	}

	assert.True(t, ByID("node-1").Matches(pkg))
	assert.False(t, ByID("node-2").Matches(pkg))
	assert.True(t, ByName("openssl").Matches(pkg))
	assert.True(t, ByPURL("rpm/openssl").Matches(pkg))
	assert.True(t, ByCPE("openssl:openssl").Matches(pkg))
	assert.False(t, ByPURL("rpm/curl").Matches(pkg))
}

func TestComponentReferencePurlCpeFalseForNonPackage(t *testing.T) {
	ext := &graph.Node{Kind: graph.KindExternal, NodeID: "ext-1"}
	assert.False(t, ByPURL("anything").Matches(ext))
	assert.False(t, ByCPE("anything").Matches(ext))
}

func TestGraphQueryComponentVsExpr(t *testing.T) {
	pkg := &graph.Node{Kind: graph.KindPackage, NodeID: "node-1", Name: "openssl", Version: "3.0.0"}

	q := Component(ByName("openssl"))
	assert.True(t, q.Matches(pkg))

	expr, _ := Parse("version=3.0.0")
	q2 := Query(expr)
	assert.True(t, q2.Matches(pkg))

	expr2, _ := Parse("version=1.1.1")
	q3 := Query(expr2)
	assert.False(t, q3.Matches(pkg))
}

func TestOptionsFunctionalOptions(t *testing.T) {
	o := NewOptions(
		WithAncestors(3),
		WithDescendants(5),
		WithRelationships(graph.DependsOn, graph.ContainedBy),
	)

	assert.Equal(t, uint(3), o.Ancestors)
	assert.Equal(t, uint(5), o.Descendants)
	assert.True(t, o.Relationships.Accepts(graph.DependsOn))
	assert.False(t, o.Relationships.Accepts(graph.TestDependencyOf))
}

func TestOptionsDefaultAcceptsAllRelationships(t *testing.T) {
	o := NewOptions(WithAncestors(1))
	assert.True(t, o.Relationships.Accepts(graph.DependsOn))
}
