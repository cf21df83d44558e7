package graph

import "fmt"

// Relationship is the closed enumeration of edge labels a PackageGraph can
// carry. The set is a protocol contract with the relational schema
// (package_relates_to_package.relationship) and must not be extended without
// a corresponding migration on the storage side.
type Relationship int

const (
	ContainedBy Relationship = iota
	DependsOn
	DevDependencyOf
	OptionalDependencyOf
	ProvidedDependencyOf
	TestDependencyOf
	RuntimeDependencyOf
	Example
	Generates
	GeneratedFrom
	AncestorOf
	DescendantOf
	VariantOf
	BuildToolOf
	DevToolOf
	DescribedBy
	PackageOf

	// numRelationships is a sentinel for array sizing and validation; it is
	// not a valid Relationship value.
	numRelationships
)

var relationshipNames = [numRelationships]string{
	"ContainedBy",
	"DependsOn",
	"DevDependencyOf",
	"OptionalDependencyOf",
	"ProvidedDependencyOf",
	"TestDependencyOf",
	"RuntimeDependencyOf",
	"Example",
	"Generates",
	"GeneratedFrom",
	"AncestorOf",
	"DescendantOf",
	"VariantOf",
	"BuildToolOf",
	"DevToolOf",
	"DescribedBy",
	"PackageOf",
}

// String returns the wire name of the relationship, matching the
// package_relates_to_package.relationship column's textual encoding.
func (r Relationship) String() string {
	if r < 0 || int(r) >= len(relationshipNames) {
		return fmt.Sprintf("Relationship(%d)", int(r))
	}
	return relationshipNames[r]
}

// IsValid reports whether r is one of the closed enumeration's members.
func (r Relationship) IsValid() bool {
	return r >= 0 && r < numRelationships
}

// ParseRelationship maps a relationship's wire name back to its value.
// Returns false if name is not a recognized member.
func ParseRelationship(name string) (Relationship, bool) {
	for i, n := range relationshipNames {
		if n == name {
			return Relationship(i), true
		}
	}
	return 0, false
}

// RelationshipSet is a small set of Relationship values used to filter
// traversal edges. An empty (nil or zero-length) set means "accept all" —
// see query.Options.Relationships and Collector's edge filter.
type RelationshipSet map[Relationship]struct{}

// NewRelationshipSet builds a RelationshipSet from a slice of relationships.
func NewRelationshipSet(rels ...Relationship) RelationshipSet {
	if len(rels) == 0 {
		return nil
	}
	s := make(RelationshipSet, len(rels))
	for _, r := range rels {
		s[r] = struct{}{}
	}
	return s
}

// Accepts reports whether r passes this filter: true if the set is empty
// (accept-all) or r is a member.
func (s RelationshipSet) Accepts(r Relationship) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[r]
	return ok
}
