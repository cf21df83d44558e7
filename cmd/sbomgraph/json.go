package main

import (
	"github.com/JimFuller-RedHat/trustify/internal/engine"
	"github.com/JimFuller-RedHat/trustify/internal/traversal"
)

// jsonResult is the CLI's JSON-friendly shape of a traversal.Result —
// traversal.Result embeds a *graph.Relationship whose underlying int
// encoding isn't meant for direct marshaling.
type jsonResult struct {
	SBOMID       string        `json:"sbom_id"`
	NodeID       string        `json:"node_id"`
	Name         string        `json:"name"`
	Version      string        `json:"version,omitempty"`
	Relationship string        `json:"relationship,omitempty"`
	Ancestors    []*jsonResult `json:"ancestors"`
	Descendants  []*jsonResult `json:"descendants"`
}

func toJSONResult(r *traversal.Result) *jsonResult {
	if r == nil {
		return nil
	}
	jr := &jsonResult{
		SBOMID:  r.Node.SBOMID,
		NodeID:  r.Node.NodeID,
		Name:    r.Node.Name,
		Version: r.Node.Version,
	}
	if r.Relationship != nil {
		jr.Relationship = r.Relationship.String()
	}
	// A nil slice (not requested) must stay null in the JSON output, distinct
	// from a non-nil empty slice (requested, nothing found) — so the
	// destination slice is only ever initialized when the source is non-nil.
	if r.Ancestors != nil {
		jr.Ancestors = make([]*jsonResult, 0, len(r.Ancestors))
		for _, a := range r.Ancestors {
			jr.Ancestors = append(jr.Ancestors, toJSONResult(a))
		}
	}
	if r.Descendants != nil {
		jr.Descendants = make([]*jsonResult, 0, len(r.Descendants))
		for _, d := range r.Descendants {
			jr.Descendants = append(jr.Descendants, toJSONResult(d))
		}
	}
	return jr
}

func toJSONResults(res engine.PaginatedResults[*traversal.Result]) engine.PaginatedResults[*jsonResult] {
	out := engine.PaginatedResults[*jsonResult]{Total: res.Total}
	for _, r := range res.Items {
		out.Items = append(out.Items, toJSONResult(r))
	}
	return out
}
