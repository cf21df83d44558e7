package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JimFuller-RedHat/trustify/internal/config"
	"github.com/JimFuller-RedHat/trustify/internal/query"
	"github.com/JimFuller-RedHat/trustify/internal/store"
	"github.com/JimFuller-RedHat/trustify/internal/store/storetest"
)

func twoPackageStore() *storetest.Store {
	s := storetest.New()
	s.AddSBOM(store.SBOM{SBOMID: "sbom-1", NodeID: "doc-1", DocumentID: "doc-1"})
	s.Nodes["sbom-1"] = []store.Node{
		{SBOMID: "sbom-1", NodeID: "pkg-a", Name: "a"},
		{SBOMID: "sbom-1", NodeID: "pkg-b", Name: "b"},
	}
	s.Packages["sbom-1"] = []store.Package{
		{SBOMID: "sbom-1", NodeID: "pkg-a", Version: "1.0.0"},
		{SBOMID: "sbom-1", NodeID: "pkg-b", Version: "2.0.0"},
	}
	s.Relationships["sbom-1"] = []store.Relationship{
		{SBOMID: "sbom-1", LeftNodeID: "pkg-a", Relationship: "DependsOn", RightNodeID: "pkg-b"},
	}
	return s
}

func cyclicStore() *storetest.Store {
	s := storetest.New()
	s.AddSBOM(store.SBOM{SBOMID: "sbom-cyclic", NodeID: "doc-1", DocumentID: "doc-1"})
	s.Nodes["sbom-cyclic"] = []store.Node{
		{SBOMID: "sbom-cyclic", NodeID: "pkg-a", Name: "a"},
		{SBOMID: "sbom-cyclic", NodeID: "pkg-b", Name: "b"},
	}
	s.Packages["sbom-cyclic"] = []store.Package{
		{SBOMID: "sbom-cyclic", NodeID: "pkg-a"},
		{SBOMID: "sbom-cyclic", NodeID: "pkg-b"},
	}
	s.Relationships["sbom-cyclic"] = []store.Relationship{
		{SBOMID: "sbom-cyclic", LeftNodeID: "pkg-a", Relationship: "DependsOn", RightNodeID: "pkg-b"},
		{SBOMID: "sbom-cyclic", LeftNodeID: "pkg-b", Relationship: "DependsOn", RightNodeID: "pkg-a"},
	}
	return s
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.New()
	require.NoError(t, err)
	return cfg
}

func TestStatusReportsCountsAfterWarm(t *testing.T) {
	s := twoPackageStore()
	e := New(s, testConfig(t))

	st, err := e.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(1), st.SBOMCount)
	assert.Equal(t, uint32(0), st.GraphCount)

	_, err = e.LoadAllGraphs(context.Background())
	require.NoError(t, err)

	st, err = e.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(1), st.GraphCount)
}

func TestClearAllGraphsEmptiesCache(t *testing.T) {
	s := twoPackageStore()
	e := New(s, testConfig(t))

	_, err := e.LoadAllGraphs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, e.CacheLen())

	e.ClearAllGraphs()
	assert.Equal(t, 0, e.CacheLen())
}

func TestRetrieveSingleFindsDescendants(t *testing.T) {
	s := twoPackageStore()
	e := New(s, testConfig(t))

	q := query.Component(query.ByName("a"))
	opts := query.NewOptions(query.WithDescendants(1))

	res, err := e.RetrieveSingle(context.Background(), "sbom-1", q, opts, Paginated{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	require.Len(t, res.Items[0].Descendants, 1)
	assert.Equal(t, "pkg-b", res.Items[0].Descendants[0].Node.NodeID)
}

func TestRetrieveSkipsCyclicGraphs(t *testing.T) {
	s := cyclicStore()

	e := New(s, testConfig(t))
	q := query.Component(query.ByName("a"))
	res, err := e.Retrieve(context.Background(), q, query.NewOptions(), Paginated{})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestStatusExcludesCyclicGraphsFromGraphCount(t *testing.T) {
	s := cyclicStore()
	e := New(s, testConfig(t))

	_, err := e.LoadAllGraphs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, e.CacheLen(), "the cyclic graph is still cached")

	st, err := e.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(1), st.SBOMCount)
	assert.Equal(t, uint32(0), st.GraphCount, "cyclic graphs are counted in sbom_count but never in graph_count")
}

func TestRetrievePaginatesResults(t *testing.T) {
	s := twoPackageStore()
	e := New(s, testConfig(t))

	expr, err := query.Parse("sbom_id=sbom-1")
	require.NoError(t, err)
	q := query.Query(expr)

	all, err := e.Retrieve(context.Background(), q, query.NewOptions(), Paginated{})
	require.NoError(t, err)
	require.Len(t, all.Items, 3) // document node + pkg-a + pkg-b

	paged, err := e.Retrieve(context.Background(), q, query.NewOptions(), Paginated{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, paged.Items, 1)
	assert.Equal(t, uint(3), paged.Total)
}

func TestRenderUnknownFormatMisses(t *testing.T) {
	s := twoPackageStore()
	e := New(s, testConfig(t))

	_, _, ok, err := e.Render(context.Background(), "sbom-1", "svg")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRenderDotProducesGraphvizOutput(t *testing.T) {
	s := twoPackageStore()
	e := New(s, testConfig(t))

	out, contentType, ok, err := e.Render(context.Background(), "sbom-1", "dot")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "text/vnd.graphviz", contentType)
	assert.Contains(t, string(out), "digraph")
}
