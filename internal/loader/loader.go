// Package loader builds an in-memory graph.Graph from one SBOM's rows
// (C2, spec §4.2). A Load call is a pure function of store state: every
// node and edge the graph will ever have is materialized in one pass,
// then the graph is frozen before being handed to the cache.
package loader

import (
	"context"
	"fmt"

	"github.com/JimFuller-RedHat/trustify/internal/graph"
	"github.com/JimFuller-RedHat/trustify/internal/store"
)

// Loader builds graphs from a store.Store.
type Loader struct {
	store store.Store
}

// New builds a Loader over the given store.
func New(s store.Store) *Loader {
	return &Loader{store: s}
}

// Load builds and freezes the graph for sbomID. It materializes:
//
//   - a DOCUMENT pseudo-node, named by the sbom's own node_id, wired to
//     every package node via a DescribedBy edge (recovered feature, not
//     named directly in the distilled spec — see SPEC_FULL.md §3);
//   - every sbom_node row as a Package node (if a matching sbom_package
//     row exists), an External node (if a matching sbom_external_node row
//     exists), or otherwise an Unknown node;
//   - every package_relates_to_package row as an edge, first
//     materializing any endpoint that has no sbom_node row (as a Package or
//     External node if a backing row exists, otherwise as an Unknown node)
//     so edges never dangle (spec §4.2 Invariants).
func (l *Loader) Load(ctx context.Context, sbomID string) (*graph.Graph, error) {
	root, err := l.store.LoadSBOM(ctx, sbomID)
	if err != nil {
		return nil, fmt.Errorf("loader: load sbom %s: %w", sbomID, err)
	}

	nodes, err := l.store.LoadNodes(ctx, sbomID)
	if err != nil {
		return nil, fmt.Errorf("loader: load nodes for %s: %w", sbomID, err)
	}
	packages, err := l.store.LoadPackages(ctx, sbomID)
	if err != nil {
		return nil, fmt.Errorf("loader: load packages for %s: %w", sbomID, err)
	}
	externals, err := l.store.LoadExternalNodes(ctx, sbomID)
	if err != nil {
		return nil, fmt.Errorf("loader: load external nodes for %s: %w", sbomID, err)
	}
	relationships, err := l.store.LoadRelationships(ctx, sbomID)
	if err != nil {
		return nil, fmt.Errorf("loader: load relationships for %s: %w", sbomID, err)
	}

	g := graph.New(sbomID)

	packageByNodeID := make(map[string]store.Package, len(packages))
	for _, p := range packages {
		packageByNodeID[p.NodeID] = p
	}
	externalByNodeID := make(map[string]store.ExternalNode, len(externals))
	for _, e := range externals {
		externalByNodeID[e.NodeID] = e
	}

	docIdx, err := g.AddNode(graph.Node{SBOMID: sbomID, NodeID: root.NodeID, Kind: graph.KindPackage,
		Name: root.Location, Published: root.Published})
	if err != nil {
		return nil, fmt.Errorf("loader: add document node for %s: %w", sbomID, err)
	}

	for _, n := range nodes {
		if n.NodeID == root.NodeID {
			// The sbom row already seeded the DOCUMENT node; sbom_node
			// carries a matching row for it but it is not a second node.
			continue
		}
		if _, err := addNode(g, sbomID, n, packageByNodeID, externalByNodeID); err != nil {
			return nil, err
		}
		if _, ok := packageByNodeID[n.NodeID]; ok {
			idx, _ := g.NodeByID(n.NodeID)
			if err := g.AddEdge(docIdx, idx, graph.DescribedBy); err != nil {
				return nil, fmt.Errorf("loader: describedBy edge for %s/%s: %w", sbomID, n.NodeID, err)
			}
		}
	}

	for _, rel := range relationships {
		relVal, ok := graph.ParseRelationship(rel.Relationship)
		if !ok {
			return nil, fmt.Errorf("loader: %s: unknown relationship %q", sbomID, rel.Relationship)
		}

		leftIdx, err := ensureNode(g, sbomID, rel.LeftNodeID, packageByNodeID, externalByNodeID)
		if err != nil {
			return nil, err
		}
		rightIdx, err := ensureNode(g, sbomID, rel.RightNodeID, packageByNodeID, externalByNodeID)
		if err != nil {
			return nil, err
		}

		if err := g.AddEdge(leftIdx, rightIdx, relVal); err != nil {
			return nil, fmt.Errorf("loader: edge %s -[%s]-> %s in %s: %w",
				rel.LeftNodeID, rel.Relationship, rel.RightNodeID, sbomID, err)
		}
	}

	g.Freeze()
	return g, nil
}

// addNode materializes one sbom_node row as a Package or External node,
// depending on which backing table has a matching row for it. A row with
// neither is an Unknown node — a referenced node with no package row.
func addNode(g *graph.Graph, sbomID string, n store.Node,
	packages map[string]store.Package, externals map[string]store.ExternalNode) (graph.NodeIndex, error) {

	if pkg, ok := packages[n.NodeID]; ok {
		return g.AddNode(graph.Node{
			SBOMID: sbomID, NodeID: n.NodeID, Kind: graph.KindPackage,
			Name: n.Name, Version: pkg.Version, Published: pkg.Published,
			PURL: pkg.PURL, CPE: pkg.CPE,
		})
	}
	if ext, ok := externals[n.NodeID]; ok {
		return g.AddNode(graph.Node{
			SBOMID: sbomID, NodeID: n.NodeID, Kind: graph.KindExternal,
			Name: n.Name, ExternalDocumentReference: ext.ExternalDocRef, ExternalNodeID: ext.ExternalNodeRef,
		})
	}
	return g.AddNode(graph.Node{SBOMID: sbomID, NodeID: n.NodeID, Kind: graph.KindUnknown, Name: n.Name})
}

// ensureNode returns the index of nodeID, materializing it first if no
// sbom_node row was ever loaded for it — a relationship row referencing a
// node the load pass did not otherwise see. Such a node becomes a Package
// or External node (without a name) when a backing sbom_package or
// sbom_external_node row exists, and an Unknown node otherwise.
func ensureNode(g *graph.Graph, sbomID, nodeID string,
	packages map[string]store.Package, externals map[string]store.ExternalNode) (graph.NodeIndex, error) {

	if idx, ok := g.NodeByID(nodeID); ok {
		return idx, nil
	}
	if pkg, ok := packages[nodeID]; ok {
		return g.AddNode(graph.Node{SBOMID: sbomID, NodeID: nodeID, Kind: graph.KindPackage,
			Version: pkg.Version, Published: pkg.Published, PURL: pkg.PURL, CPE: pkg.CPE})
	}
	if ext, ok := externals[nodeID]; ok {
		return g.AddNode(graph.Node{SBOMID: sbomID, NodeID: nodeID, Kind: graph.KindExternal,
			ExternalDocumentReference: ext.ExternalDocRef, ExternalNodeID: ext.ExternalNodeRef})
	}
	return g.AddNode(graph.Node{SBOMID: sbomID, NodeID: nodeID, Kind: graph.KindUnknown})
}
