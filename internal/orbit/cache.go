package orbit

import (
	"sync"

	"github.com/litescript/ls-orbits/internal/neo"
)

// DefaultCacheEntries bounds each cache before it is flushed.
const DefaultCacheEntries = 4096

// CacheObserver receives cache lookup outcomes, e.g. for metrics.
type CacheObserver interface {
	CacheLookup(cache string, hit bool)
}

// paramKey is every value Derive depends on. Equal keys always derive equal
// parameters, so lookups compare by value and survive data refreshes that
// rebuild records.
type paramKey struct {
	missKm   float64
	velocity float64
	diameter float64
	epochMs  float64
	index    int
	seed     int
}

// ParamCache memoizes derived orbit parameters.
type ParamCache struct {
	mu       sync.Mutex
	entries  map[paramKey]Parameters
	max      int
	observer CacheObserver
	hits     uint64
	misses   uint64
}

// NewParamCache creates a parameter cache holding at most max entries
// (DefaultCacheEntries when max <= 0). observer may be nil.
func NewParamCache(max int, observer CacheObserver) *ParamCache {
	if max <= 0 {
		max = DefaultCacheEntries
	}
	return &ParamCache{
		entries:  make(map[paramKey]Parameters),
		max:      max,
		observer: observer,
	}
}

// Get returns the parameters for an asteroid at a list index, deriving them
// on a miss.
func (c *ParamCache) Get(a neo.Asteroid, index int) Parameters {
	seed := neo.Seed(a.Identifier)
	key := paramKey{
		missKm:   a.MissDistanceKm,
		velocity: a.VelocityKps,
		diameter: a.AverageDiameterMeters,
		epochMs:  a.EpochMs,
		index:    index,
		seed:     seed,
	}

	c.mu.Lock()
	p, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		p = Derive(a, index, seed)
		if len(c.entries) >= c.max {
			c.entries = make(map[paramKey]Parameters)
		}
		c.entries[key] = p
		c.misses++
	}
	c.mu.Unlock()

	if c.observer != nil {
		c.observer.CacheLookup("params", ok)
	}
	return p
}

// Len returns the number of cached entries.
func (c *ParamCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cumulative hit and miss counts.
func (c *ParamCache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

type ringKey struct {
	a, b     float64
	segments int
}

// RingCache memoizes sampled ellipses keyed by semi-axes and segment count.
// Returned slices are shared and must not be modified.
type RingCache struct {
	mu       sync.Mutex
	entries  map[ringKey]EllipsePoints
	segments int
	max      int
	observer CacheObserver
}

// NewRingCache creates a ring cache sampling with the given segment count.
func NewRingCache(segments, max int, observer CacheObserver) *RingCache {
	if segments <= 0 {
		segments = DefaultSegments
	}
	if max <= 0 {
		max = DefaultCacheEntries
	}
	return &RingCache{
		entries:  make(map[ringKey]EllipsePoints),
		segments: segments,
		max:      max,
		observer: observer,
	}
}

// Get returns the ring for semi-axes (a, b).
func (c *RingCache) Get(a, b float64) EllipsePoints {
	key := ringKey{a: a, b: b, segments: c.segments}

	c.mu.Lock()
	pts, ok := c.entries[key]
	if !ok {
		pts = SampleEllipse(a, b, c.segments)
		if len(c.entries) >= c.max {
			c.entries = make(map[ringKey]EllipsePoints)
		}
		c.entries[key] = pts
	}
	c.mu.Unlock()

	if c.observer != nil {
		c.observer.CacheLookup("rings", ok)
	}
	return pts
}

// Segments returns the configured segment count.
func (c *RingCache) Segments() int {
	return c.segments
}

// Len returns the number of cached rings.
func (c *RingCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
