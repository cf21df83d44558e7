package engine

// Status reports the engine's current SBOM and cache population — the Go
// shape of AnalysisStatus in the original service.
type Status struct {
	SBOMCount  uint32
	GraphCount uint32
}
