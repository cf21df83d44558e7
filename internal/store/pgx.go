package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxStore is a Store backed by a pgx connection pool.
type PgxStore struct {
	pool *pgxpool.Pool
}

// NewPgxStore wraps an already-connected pool.
func NewPgxStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{pool: pool}
}

func (s *PgxStore) ListSBOMIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sbom_id FROM sbom
		ORDER BY document_id ASC, published DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list sbom ids: %w", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("store: scan sbom ids: %w", err)
	}
	return ids, nil
}

func (s *PgxStore) LoadSBOM(ctx context.Context, sbomID string) (*SBOM, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT sbom_id, node_id, location, sha256, document_id, published, authors
		FROM sbom WHERE sbom_id = $1`, sbomID)

	var rec SBOM
	err := row.Scan(&rec.SBOMID, &rec.NodeID, &rec.Location, &rec.SHA256,
		&rec.DocumentID, &rec.Published, &rec.Authors)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("store: sbom %s: %w", sbomID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load sbom %s: %w", sbomID, err)
	}
	return &rec, nil
}

func (s *PgxStore) LoadNodes(ctx context.Context, sbomID string) ([]Node, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sbom_id, node_id, name FROM sbom_node WHERE sbom_id = $1`, sbomID)
	if err != nil {
		return nil, fmt.Errorf("store: load nodes for %s: %w", sbomID, err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowToStructByName[Node])
}

func (s *PgxStore) LoadPackages(ctx context.Context, sbomID string) ([]Package, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.sbom_id, p.node_id, p.version, p.published,
		       COALESCE(array_agg(DISTINCT pu.purl) FILTER (WHERE pu.purl IS NOT NULL), '{}') AS purl,
		       COALESCE(array_agg(DISTINCT pc.cpe) FILTER (WHERE pc.cpe IS NOT NULL), '{}') AS cpe
		FROM sbom_package p
		LEFT JOIN sbom_package_purl_ref pu ON pu.sbom_id = p.sbom_id AND pu.node_id = p.node_id
		LEFT JOIN sbom_package_cpe_ref pc ON pc.sbom_id = p.sbom_id AND pc.node_id = p.node_id
		WHERE p.sbom_id = $1
		GROUP BY p.sbom_id, p.node_id, p.version, p.published`, sbomID)
	if err != nil {
		return nil, fmt.Errorf("store: load packages for %s: %w", sbomID, err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowToStructByName[Package])
}

func (s *PgxStore) LoadExternalNodes(ctx context.Context, sbomID string) ([]ExternalNode, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sbom_id, node_id, external_doc_ref, external_type,
		       discriminator_type, discriminator_value, external_node_ref
		FROM sbom_external_node WHERE sbom_id = $1`, sbomID)
	if err != nil {
		return nil, fmt.Errorf("store: load external nodes for %s: %w", sbomID, err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowToStructByName[ExternalNode])
}

func (s *PgxStore) LoadRelationships(ctx context.Context, sbomID string) ([]Relationship, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sbom_id, left_node_id, relationship, right_node_id
		FROM package_relates_to_package WHERE sbom_id = $1`, sbomID)
	if err != nil {
		return nil, fmt.Errorf("store: load relationships for %s: %w", sbomID, err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowToStructByName[Relationship])
}

func (s *PgxStore) FindExternalNodeByNodeID(ctx context.Context, nodeID string) (*ExternalNode, bool, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT sbom_id, node_id, external_doc_ref, external_type,
		       discriminator_type, discriminator_value, external_node_ref
		FROM sbom_external_node WHERE node_id = $1 LIMIT 1`, nodeID)

	var rec ExternalNode
	err := row.Scan(&rec.SBOMID, &rec.NodeID, &rec.ExternalDocRef, &rec.ExternalType,
		&rec.DiscriminatorType, &rec.DiscriminatorValue, &rec.ExternalNodeRef)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: find external node %s: %w", nodeID, err)
	}
	return &rec, true, nil
}

func (s *PgxStore) FindSBOMBySourceDocumentSHA256(ctx context.Context, sha256 string) (string, bool, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT s.sbom_id FROM sbom s
		JOIN source_document d ON d.id = s.document_id
		WHERE d.sha256 = $1 LIMIT 1`, sha256)

	var sbomID string
	err := row.Scan(&sbomID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store: find sbom by source document sha256: %w", err)
	}
	return sbomID, true, nil
}

func (s *PgxStore) FindSBOMByDocumentID(ctx context.Context, documentID string) (string, bool, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT sbom_id FROM sbom WHERE document_id = $1 LIMIT 1`, documentID)

	var sbomID string
	err := row.Scan(&sbomID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store: find sbom by document id: %w", err)
	}
	return sbomID, true, nil
}

func (s *PgxStore) FindNodeChecksum(ctx context.Context, nodeID string) (*NodeChecksum, bool, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT sbom_id, node_id, type, value FROM sbom_node_checksum
		WHERE node_id = $1 LIMIT 1`, nodeID)

	var rec NodeChecksum
	err := row.Scan(&rec.SBOMID, &rec.NodeID, &rec.Type, &rec.Value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: find node checksum %s: %w", nodeID, err)
	}
	return &rec, true, nil
}

func (s *PgxStore) FindNodeChecksumByValue(ctx context.Context, value, excludeSBOMID string) (*NodeChecksum, bool, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT sbom_id, node_id, type, value FROM sbom_node_checksum
		WHERE value = $1 AND sbom_id != $2
		ORDER BY sbom_id, node_id
		LIMIT 1`, value, excludeSBOMID)

	var rec NodeChecksum
	err := row.Scan(&rec.SBOMID, &rec.NodeID, &rec.Type, &rec.Value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: find node checksum by value: %w", err)
	}
	return &rec, true, nil
}
