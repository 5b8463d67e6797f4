// Package observability exposes Prometheus metrics for catalog fetches,
// normalization fallbacks, orbit caches and rendered frames.
package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litescript/ls-orbits/internal/neo"
)

// Collector bundles the engine's Prometheus metrics. A nil *Collector is
// valid and records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	Fetches       *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	Records       prometheus.Gauge
	VisibleBodies prometheus.Gauge
	Fallbacks     *prometheus.CounterVec
	CacheLookups  *prometheus.CounterVec
	Frames        prometheus.Counter
}

// NewCollector registers metrics against reg, defaulting to the global
// Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	fetches, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "neo_catalog_fetches_total",
		Help: "Catalog fetch attempts, labeled by result.",
	}, []string{"result"}), "neo_catalog_fetches_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "neo_catalog_fetch_duration_seconds",
		Help:    "Catalog fetch latency in seconds.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}), "neo_catalog_fetch_duration_seconds")
	if err != nil {
		return nil, err
	}

	records, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "neo_catalog_records",
		Help: "Number of records in the current catalog.",
	}), "neo_catalog_records")
	if err != nil {
		return nil, err
	}

	visible, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "neo_scene_visible_bodies",
		Help: "Number of bodies passing the current filter and selection.",
	}), "neo_scene_visible_bodies")
	if err != nil {
		return nil, err
	}

	fallbacks, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "neo_normalize_fallbacks_total",
		Help: "Fields that fell back to defaults during normalization, labeled by field.",
	}, []string{"field"}), "neo_normalize_fallbacks_total")
	if err != nil {
		return nil, err
	}

	lookups, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "neo_orbit_cache_lookups_total",
		Help: "Orbit cache lookups, labeled by cache and result.",
	}, []string{"cache", "result"}), "neo_orbit_cache_lookups_total")
	if err != nil {
		return nil, err
	}

	frames, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "neo_frames_total",
		Help: "Animation frames delivered to the renderer.",
	}), "neo_frames_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:      gatherer,
		Fetches:       fetches,
		FetchDuration: duration,
		Records:       records,
		VisibleBodies: visible,
		Fallbacks:     fallbacks,
		CacheLookups:  lookups,
		Frames:        frames,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveFetch records one fetch attempt.
func (c *Collector) ObserveFetch(d time.Duration, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.Fetches.WithLabelValues(result).Inc()
	c.FetchDuration.Observe(d.Seconds())
}

// ObserveCatalog records the size of a freshly loaded catalog and the
// defaults its records needed.
func (c *Collector) ObserveCatalog(asteroids []neo.Asteroid) {
	if c == nil {
		return
	}
	c.Records.Set(float64(len(asteroids)))
	for _, a := range asteroids {
		for _, field := range a.Defaulted.Fields() {
			c.Fallbacks.WithLabelValues(field).Inc()
		}
	}
}

// SetVisible records the visible body count.
func (c *Collector) SetVisible(n int) {
	if c == nil {
		return
	}
	c.VisibleBodies.Set(float64(n))
}

// CacheLookup records an orbit cache outcome. It satisfies orbit.CacheObserver.
func (c *Collector) CacheLookup(cache string, hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.CacheLookups.WithLabelValues(cache, result).Inc()
}

// FrameRendered counts one animation frame.
func (c *Collector) FrameRendered() {
	if c == nil {
		return
	}
	c.Frames.Inc()
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}
