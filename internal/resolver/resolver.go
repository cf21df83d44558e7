// Package resolver implements cross-SBOM external reference resolution
// (C7): turning an External node's reference into the (sbom_id, node_id)
// pair it points at in another SBOM's graph, ported from
// resolve_external_sbom in the original analysis service.
package resolver

import (
	"context"
	"fmt"

	"github.com/JimFuller-RedHat/trustify/internal/store"
)

// Resolver resolves external references against a store.Store. It
// satisfies traversal.Resolver.
type Resolver struct {
	store store.Store
}

// New builds a Resolver over the given store.
func New(s store.Store) *Resolver {
	return &Resolver{store: s}
}

// Resolve dispatches on the sbom_external_node row's external_type to
// determine which SBOM and node the reference points at. Any lookup miss
// (no sbom_external_node row, empty discriminator, no matching sbom or
// checksum) returns ok=false rather than an error — an unresolvable
// external reference contributes nothing to a traversal, it does not
// abort it.
func (r *Resolver) Resolve(ctx context.Context, externalNodeRef string) (sbomID, nodeID string, ok bool) {
	ext, found, err := r.store.FindExternalNodeByNodeID(ctx, externalNodeRef)
	if err != nil || !found {
		return "", "", false
	}

	switch ext.ExternalType {
	case store.ExternalSPDX:
		return r.resolveSPDX(ctx, ext)
	case store.ExternalCycloneDx:
		return r.resolveCycloneDX(ctx, ext)
	case store.ExternalRedHatProductComponent:
		return r.resolveRedHatProductComponent(ctx, ext)
	default:
		return "", "", false
	}
}

// resolveSPDX joins sbom to source_document on sha256: the
// discriminator_value is the referenced document's content hash, and the
// node_id of the result is simply the external_node_ref itself.
func (r *Resolver) resolveSPDX(ctx context.Context, ext *store.ExternalNode) (string, string, bool) {
	if ext.DiscriminatorValue == "" {
		return "", "", false
	}
	if ext.DiscriminatorType != store.DiscriminatorSHA256 {
		return "", "", false
	}

	sbomID, ok, err := r.store.FindSBOMBySourceDocumentSHA256(ctx, ext.DiscriminatorValue)
	if err != nil || !ok {
		return "", "", false
	}
	return sbomID, ext.ExternalNodeRef, true
}

// resolveCycloneDX constructs the urn:cdx document identifier from the
// external document reference and discriminator, and looks it up directly
// against sbom.document_id.
func (r *Resolver) resolveCycloneDX(ctx context.Context, ext *store.ExternalNode) (string, string, bool) {
	if ext.DiscriminatorValue == "" {
		return "", "", false
	}

	externalDocID := fmt.Sprintf("urn:cdx:%s/%s", ext.ExternalDocRef, ext.DiscriminatorValue)
	sbomID, ok, err := r.store.FindSBOMByDocumentID(ctx, externalDocID)
	if err != nil || !ok {
		return "", "", false
	}
	return sbomID, ext.ExternalNodeRef, true
}

// resolveRedHatProductComponent treats external_node_ref as a package
// checksum: it looks that checksum up in sbom_node_checksum to find its
// value, then looks that value up again in a different SBOM to find the
// matching node. When more than one row matches the second lookup, the
// first ordered by (sbom_id, node_id) wins — an explicit, documented
// tie-break the original leaves undefined.
func (r *Resolver) resolveRedHatProductComponent(ctx context.Context, ext *store.ExternalNode) (string, string, bool) {
	origin, found, err := r.store.FindNodeChecksum(ctx, ext.ExternalNodeRef)
	if err != nil || !found {
		return "", "", false
	}

	matched, found, err := r.store.FindNodeChecksumByValue(ctx, origin.Value, origin.SBOMID)
	if err != nil || !found {
		return "", "", false
	}
	return matched.SBOMID, matched.NodeID, true
}
