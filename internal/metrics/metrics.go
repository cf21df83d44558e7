// Package metrics exposes the graph cache's live state as Prometheus
// gauges, in the teacher's style of registering metrics against a
// caller-supplied prometheus.Registerer rather than the global default
// registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// CacheStater is the subset of cache.GraphCache metrics reads from.
// Declared as a local interface, following the teacher's convention of
// depending on the smallest surface a package actually needs.
type CacheStater interface {
	SizeUsed() uint64
	Len() int
}

// Metrics holds the registered gauges backing a CacheStater.
type Metrics struct {
	cache       CacheStater
	sizeBytes   prometheus.GaugeFunc
	items       prometheus.GaugeFunc
}

// Register builds and registers the cache's metrics against reg.
func Register(reg prometheus.Registerer, cache CacheStater) (*Metrics, error) {
	m := &Metrics{cache: cache}

	m.sizeBytes = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "trustify",
		Subsystem: "graph_cache",
		Name:      "size_bytes",
		Help:      "Estimated bytes currently held by the graph cache.",
	}, func() float64 { return float64(cache.SizeUsed()) })

	m.items = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "trustify",
		Subsystem: "graph_cache",
		Name:      "items",
		Help:      "Number of graphs currently held by the graph cache.",
	}, func() float64 { return float64(cache.Len()) })

	if err := reg.Register(m.sizeBytes); err != nil {
		return nil, err
	}
	if err := reg.Register(m.items); err != nil {
		return nil, err
	}
	return m, nil
}
