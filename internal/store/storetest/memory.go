// Package storetest provides an in-memory store.Store fake for tests that
// need a working backend without a live Postgres — the same role the
// teacher's fake BuildFunc plays in the cache tests, just one layer lower.
package storetest

import (
	"context"
	"sort"
	"time"

	"github.com/JimFuller-RedHat/trustify/internal/store"
)

// Store is a store.Store backed by plain Go slices, keyed by sbom_id.
// Safe for sequential use within one test; not concurrency-hardened.
type Store struct {
	SBOMs             map[string]store.SBOM
	Nodes             map[string][]store.Node
	Packages          map[string][]store.Package
	ExternalNodes     map[string][]store.ExternalNode
	Relationships     map[string][]store.Relationship
	NodeChecksums     []store.NodeChecksum
	SourceDocumentSHA map[string]string // sha256 -> sbom_id
	DocumentIDToSBOM  map[string]string // document_id -> sbom_id
}

// New returns an empty fake store.
func New() *Store {
	return &Store{
		SBOMs:             make(map[string]store.SBOM),
		Nodes:             make(map[string][]store.Node),
		Packages:          make(map[string][]store.Package),
		ExternalNodes:     make(map[string][]store.ExternalNode),
		Relationships:     make(map[string][]store.Relationship),
		SourceDocumentSHA: make(map[string]string),
		DocumentIDToSBOM:  make(map[string]string),
	}
}

// AddSBOM registers sbom's root row and indexes its document_id for
// FindSBOMByDocumentID.
func (s *Store) AddSBOM(sbom store.SBOM) {
	s.SBOMs[sbom.SBOMID] = sbom
	s.DocumentIDToSBOM[sbom.DocumentID] = sbom.SBOMID
	if sbom.SHA256 != "" {
		s.SourceDocumentSHA[sbom.SHA256] = sbom.SBOMID
	}
}

func (s *Store) ListSBOMIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(s.SBOMs))
	for id := range s.SBOMs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.SBOMs[ids[i]], s.SBOMs[ids[j]]
		if a.DocumentID != b.DocumentID {
			return a.DocumentID < b.DocumentID
		}
		return timeOrZero(a.Published).After(timeOrZero(b.Published))
	})
	return ids, nil
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func (s *Store) LoadSBOM(_ context.Context, sbomID string) (*store.SBOM, error) {
	rec, ok := s.SBOMs[sbomID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &rec, nil
}

func (s *Store) LoadNodes(_ context.Context, sbomID string) ([]store.Node, error) {
	return s.Nodes[sbomID], nil
}

func (s *Store) LoadPackages(_ context.Context, sbomID string) ([]store.Package, error) {
	return s.Packages[sbomID], nil
}

func (s *Store) LoadExternalNodes(_ context.Context, sbomID string) ([]store.ExternalNode, error) {
	return s.ExternalNodes[sbomID], nil
}

func (s *Store) LoadRelationships(_ context.Context, sbomID string) ([]store.Relationship, error) {
	return s.Relationships[sbomID], nil
}

func (s *Store) FindExternalNodeByNodeID(_ context.Context, nodeID string) (*store.ExternalNode, bool, error) {
	for _, nodes := range s.ExternalNodes {
		for _, n := range nodes {
			if n.NodeID == nodeID {
				rec := n
				return &rec, true, nil
			}
		}
	}
	return nil, false, nil
}

func (s *Store) FindSBOMBySourceDocumentSHA256(_ context.Context, sha256 string) (string, bool, error) {
	id, ok := s.SourceDocumentSHA[sha256]
	return id, ok, nil
}

func (s *Store) FindSBOMByDocumentID(_ context.Context, documentID string) (string, bool, error) {
	id, ok := s.DocumentIDToSBOM[documentID]
	return id, ok, nil
}

func (s *Store) FindNodeChecksum(_ context.Context, nodeID string) (*store.NodeChecksum, bool, error) {
	for _, c := range s.NodeChecksums {
		if c.NodeID == nodeID {
			rec := c
			return &rec, true, nil
		}
	}
	return nil, false, nil
}

func (s *Store) FindNodeChecksumByValue(_ context.Context, value, excludeSBOMID string) (*store.NodeChecksum, bool, error) {
	var matches []store.NodeChecksum
	for _, c := range s.NodeChecksums {
		if c.Value == value && c.SBOMID != excludeSBOMID {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return nil, false, nil
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].SBOMID != matches[j].SBOMID {
			return matches[i].SBOMID < matches[j].SBOMID
		}
		return matches[i].NodeID < matches[j].NodeID
	})
	rec := matches[0]
	return &rec, true, nil
}
