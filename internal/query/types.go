// Package query implements the filter layer (C5) that selects which nodes
// of a loaded graph a retrieve/retrieve_single call starts from.
package query

import "github.com/JimFuller-RedHat/trustify/internal/graph"

// ComponentReference names a single component by one of its identifying
// fields. Exactly one variant is set at a time — callers build one via the
// ByID/ByName/ByPURL/ByCPE constructors below.
type ComponentReference struct {
	kind  componentKind
	value string
}

type componentKind int

const (
	byID componentKind = iota
	byName
	byPURL
	byCPE
)

func ByID(id string) ComponentReference     { return ComponentReference{kind: byID, value: id} }
func ByName(name string) ComponentReference { return ComponentReference{kind: byName, value: name} }
func ByPURL(purl string) ComponentReference { return ComponentReference{kind: byPURL, value: purl} }
func ByCPE(cpe string) ComponentReference   { return ComponentReference{kind: byCPE, value: cpe} }

// Matches reports whether node n satisfies this component reference.
// Purl/Cpe matching is substring, not equality (spec §4.5); Id/Name are
// exact-match against node_id/name respectively.
func (c ComponentReference) Matches(n *graph.Node) bool {
	switch c.kind {
	case byID:
		return n.NodeID == c.value
	case byName:
		return n.Name == c.value
	case byPURL:
		return n.HasPURL(c.value)
	case byCPE:
		return n.HasCPE(c.value)
	default:
		return false
	}
}

// GraphQuery selects the starting node set for a retrieve call: either a
// single component reference, or a free-form filter expression evaluated
// against every node's field context.
type GraphQuery struct {
	component *ComponentReference
	expr      *Expr
}

// Component builds a GraphQuery that matches exactly the nodes satisfying
// ref.
func Component(ref ComponentReference) GraphQuery {
	return GraphQuery{component: &ref}
}

// Query builds a GraphQuery from a parsed filter expression.
func Query(expr *Expr) GraphQuery {
	return GraphQuery{expr: expr}
}

// Matches reports whether node n is selected by this query.
func (q GraphQuery) Matches(n *graph.Node) bool {
	if q.component != nil {
		return q.component.Matches(n)
	}
	if q.expr != nil {
		return q.expr.Apply(fieldContext(n))
	}
	return false
}

func fieldContext(n *graph.Node) map[string]string {
	ctx := map[string]string{
		"sbom_id": n.SBOMID,
		"node_id": n.NodeID,
		"name":    n.Name,
	}
	switch n.Kind {
	case graph.KindPackage:
		ctx["version"] = n.Version
	case graph.KindExternal:
		ctx["external_document_reference"] = n.ExternalDocumentReference
		ctx["external_node_id"] = n.ExternalNodeID
	}
	return ctx
}

// Options controls a retrieve call's traversal depth and relationship
// filter — the Go analogue of QueryOptions in the original service.
type Options struct {
	Ancestors     uint
	Descendants   uint
	Relationships graph.RelationshipSet
}

// Option configures an Options value.
type Option func(*Options)

// WithAncestors sets how many hops up the ancestor chain to collect.
func WithAncestors(n uint) Option {
	return func(o *Options) { o.Ancestors = n }
}

// WithDescendants sets how many hops down the descendant chain to collect.
func WithDescendants(n uint) Option {
	return func(o *Options) { o.Descendants = n }
}

// WithRelationships restricts traversal to the given relationship labels.
// An empty/omitted set accepts every relationship.
func WithRelationships(rels ...graph.Relationship) Option {
	return func(o *Options) { o.Relationships = graph.NewRelationshipSet(rels...) }
}

// NewOptions builds an Options value from functional options.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
