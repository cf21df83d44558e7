package store

import "context"

// Store is the narrow read surface the loader and resolver need — the Go
// analogue of sea-orm's ConnectionTrait. PgxStore (over a *pgxpool.Pool)
// and the in-memory fake in storetest both satisfy it, so neither the
// loader nor the resolver is ever coupled to a concrete connection type.
type Store interface {
	// ListSBOMIDs returns every sbom_id, ordered by document_id ascending
	// then published descending — the same ordering load_all_graphs and
	// status use in the original service.
	ListSBOMIDs(ctx context.Context) ([]string, error)

	// LoadSBOM returns the root sbom row for id.
	LoadSBOM(ctx context.Context, sbomID string) (*SBOM, error)

	// LoadNodes returns every sbom_node row for id.
	LoadNodes(ctx context.Context, sbomID string) ([]Node, error)

	// LoadPackages returns every sbom_package row for id, with purl/cpe
	// already joined in.
	LoadPackages(ctx context.Context, sbomID string) ([]Package, error)

	// LoadExternalNodes returns every sbom_external_node row for id.
	LoadExternalNodes(ctx context.Context, sbomID string) ([]ExternalNode, error)

	// LoadRelationships returns every package_relates_to_package row for id.
	LoadRelationships(ctx context.Context, sbomID string) ([]Relationship, error)

	// FindExternalNodeByNodeID looks up a sbom_external_node row by its
	// node_id, regardless of which SBOM it belongs to — the entry point
	// for resolving an external reference encountered during traversal.
	FindExternalNodeByNodeID(ctx context.Context, nodeID string) (*ExternalNode, bool, error)

	// FindSBOMBySourceDocumentSHA256 joins sbom to source_document on
	// sha256, used to resolve SPDX external references.
	FindSBOMBySourceDocumentSHA256(ctx context.Context, sha256 string) (sbomID string, ok bool, err error)

	// FindSBOMByDocumentID looks up a sbom row by its document_id, used to
	// resolve CycloneDX external references via the constructed
	// urn:cdx:{doc_ref}/{discriminator} identifier.
	FindSBOMByDocumentID(ctx context.Context, documentID string) (sbomID string, ok bool, err error)

	// FindNodeChecksum looks up a sbom_node_checksum row by node_id.
	FindNodeChecksum(ctx context.Context, nodeID string) (*NodeChecksum, bool, error)

	// FindNodeChecksumByValue looks up sbom_node_checksum rows matching
	// value in any SBOM other than excludeSBOMID, ordered by
	// (sbom_id, node_id) for deterministic tie-breaking when more than one
	// row matches.
	FindNodeChecksumByValue(ctx context.Context, value, excludeSBOMID string) (*NodeChecksum, bool, error)
}
