// Package engine implements the procedural API spec.md §6 describes:
// new, status, load_all_graphs, clear_all_graphs, retrieve, retrieve_single,
// render. It is the Go shape of AnalysisService, wiring together
// internal/store, internal/loader, internal/cache, internal/resolver,
// internal/traversal and internal/query.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/JimFuller-RedHat/trustify/internal/cache"
	"github.com/JimFuller-RedHat/trustify/internal/config"
	"github.com/JimFuller-RedHat/trustify/internal/graph"
	"github.com/JimFuller-RedHat/trustify/internal/loader"
	"github.com/JimFuller-RedHat/trustify/internal/query"
	"github.com/JimFuller-RedHat/trustify/internal/render"
	"github.com/JimFuller-RedHat/trustify/internal/resolver"
	"github.com/JimFuller-RedHat/trustify/internal/store"
	"github.com/JimFuller-RedHat/trustify/internal/traversal"
)

// Engine is a new analysis service instance with its own graph cache.
// Creating a new Engine is a deliberate choice — it implies a fresh,
// empty cache — so reuse one Engine across calls rather than
// constructing one per request.
type Engine struct {
	store    store.Store
	loader   *loader.Loader
	resolver *resolver.Resolver
	cache    *cache.GraphCache
	cfg      config.Config
}

// New builds an Engine backed by s, configured by cfg.
func New(s store.Store, cfg config.Config) *Engine {
	l := loader.New(s)
	e := &Engine{
		store:    s,
		loader:   l,
		resolver: resolver.New(s),
		cfg:      cfg,
	}
	e.cache = cache.New(l.Load, cache.WithMaxCacheSize(cfg.MaxCacheSize), cache.WithLogger(cfg.Logger), cache.WithTracer(cfg.Tracer))
	return e
}

// CacheSizeUsed returns the cache's current estimated byte usage.
func (e *Engine) CacheSizeUsed() uint64 { return e.cache.SizeUsed() }

// CacheLen returns the number of graphs currently cached.
func (e *Engine) CacheLen() int { return e.cache.Len() }

// Status reports how many SBOMs are known to the store and how many
// graphs are currently cached, not counting cached graphs that failed the
// cycle gate.
func (e *Engine) Status(ctx context.Context) (Status, error) {
	ids, err := e.store.ListSBOMIDs(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("engine: status: %w", err)
	}
	return Status{SBOMCount: uint32(len(ids)), GraphCount: uint32(e.cache.NonCyclicLen())}, nil
}

// LoadAllGraphs builds (or fetches from cache) every known SBOM's graph,
// bounded at runtime.NumCPU() concurrent builds via errgroup — stop on
// first hard error, same as the original's intent, expressed with Go's
// idiomatic "build N independent things concurrently" primitive rather
// than a hand-rolled worker pool.
func (e *Engine) LoadAllGraphs(ctx context.Context) (map[string]*graph.Graph, error) {
	ids, err := e.store.ListSBOMIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine: load all graphs: %w", err)
	}
	return e.loadGraphs(ctx, ids)
}

func (e *Engine) loadGraphs(ctx context.Context, ids []string) (map[string]*graph.Graph, error) {
	result := make(map[string]*graph.Graph, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, id := range ids {
		id := id
		g.Go(func() error {
			gr, err := e.cache.GetOrLoad(gctx, id)
			if err != nil {
				return fmt.Errorf("engine: load graph %s: %w", id, err)
			}
			mu.Lock()
			result[id] = gr
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// ClearAllGraphs evicts every cached graph.
func (e *Engine) ClearAllGraphs() {
	e.cache.Clear()
}

// RetrieveSingle runs query against exactly one SBOM's graph.
func (e *Engine) RetrieveSingle(ctx context.Context, sbomID string, q query.GraphQuery, opts query.Options, page Paginated) (PaginatedResults[*traversal.Result], error) {
	graphs, err := e.loadGraphs(ctx, []string{sbomID})
	if err != nil {
		return PaginatedResults[*traversal.Result]{}, err
	}
	results := e.runGraphQuery(ctx, q, opts, graphs)
	return paginate(results, page), nil
}

// Retrieve runs query across every known SBOM's graph.
func (e *Engine) Retrieve(ctx context.Context, q query.GraphQuery, opts query.Options, page Paginated) (PaginatedResults[*traversal.Result], error) {
	ids, err := e.store.ListSBOMIDs(ctx)
	if err != nil {
		return PaginatedResults[*traversal.Result]{}, fmt.Errorf("engine: retrieve: %w", err)
	}
	graphs, err := e.loadGraphs(ctx, ids)
	if err != nil {
		return PaginatedResults[*traversal.Result]{}, err
	}
	results := e.runGraphQuery(ctx, q, opts, graphs)
	return paginate(results, page), nil
}

// runGraphQuery matches q against every non-cyclic graph's nodes and, for
// each match, collects its ancestor/descendant trees.
func (e *Engine) runGraphQuery(ctx context.Context, q query.GraphQuery, opts query.Options, graphs map[string]*graph.Graph) []*traversal.Result {
	set := traversal.GraphSet(graphs)

	var results []*traversal.Result
	for _, g := range graphs {
		if cyclic, _ := g.CheckCycle(); cyclic {
			continue
		}

		for _, idx := range g.NodeIndices() {
			n, ok := g.NodeWeight(idx)
			if !ok || !q.Matches(n) {
				continue
			}

			ancestors, descendants, _ := traversal.CollectPair(ctx, set, e.resolver, opts.Relationships,
				g, idx, opts.Ancestors, opts.Descendants)

			results = append(results, &traversal.Result{
				Node:        *n,
				Ancestors:   ancestors,
				Descendants: descendants,
			})
		}
	}
	return results
}

// Render renders sbom_id's graph using the named renderer. Returns
// ok=false for an unknown renderer name, matching the original's
// Option<(bytes, content_type)> return.
func (e *Engine) Render(ctx context.Context, sbomID, renderer string) ([]byte, string, bool, error) {
	g, err := e.cache.GetOrLoad(ctx, sbomID)
	if err != nil {
		return nil, "", false, fmt.Errorf("engine: render %s: %w", sbomID, err)
	}
	switch renderer {
	case "dot":
		out, err := render.DOT(g)
		if err != nil {
			return nil, "", false, fmt.Errorf("engine: render %s as dot: %w", sbomID, err)
		}
		return out, "text/vnd.graphviz", true, nil
	default:
		return nil, "", false, nil
	}
}
