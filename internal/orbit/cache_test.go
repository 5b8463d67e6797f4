package orbit

import (
	"sync"
	"testing"
)

type recordingObserver struct {
	mu     sync.Mutex
	hits   map[string]int
	misses map[string]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{hits: map[string]int{}, misses: map[string]int{}}
}

func (o *recordingObserver) CacheLookup(cache string, hit bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if hit {
		o.hits[cache]++
	} else {
		o.misses[cache]++
	}
}

func TestParamCache_ValueEquality(t *testing.T) {
	obs := newRecordingObserver()
	c := NewParamCache(0, obs)

	a := defaultAsteroid()
	first := c.Get(a, 2)

	// A freshly built but equal record must hit.
	b := defaultAsteroid()
	second := c.Get(b, 2)

	if first != second {
		t.Errorf("equal inputs gave different parameters")
	}
	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", hits, misses)
	}
	if obs.hits["params"] != 1 || obs.misses["params"] != 1 {
		t.Errorf("observer saw %v hits, %v misses", obs.hits, obs.misses)
	}
}

func TestParamCache_InvalidatesOnChange(t *testing.T) {
	c := NewParamCache(0, nil)
	a := defaultAsteroid()
	before := c.Get(a, 0)

	a.MissDistanceKm = 60000
	after := c.Get(a, 0)
	if before == after {
		t.Error("changed miss distance should derive new parameters")
	}
	if after != DeriveFor(a, 0) {
		t.Errorf("cached value differs from Derive: %+v", after)
	}

	a.Identifier = "other"
	if c.Get(a, 0) == after {
		t.Error("changed identifier seed should derive new parameters")
	}
	if c.Get(a, 1) == c.Get(a, 0) {
		t.Error("index is part of the key")
	}
}

func TestParamCache_Bounded(t *testing.T) {
	c := NewParamCache(4, nil)
	a := defaultAsteroid()
	for i := 0; i < 10; i++ {
		c.Get(a, i)
	}
	if c.Len() > 4 {
		t.Errorf("Len = %d, want <= 4", c.Len())
	}
}

func TestRingCache(t *testing.T) {
	obs := newRecordingObserver()
	c := NewRingCache(50, 0, obs)

	r1 := c.Get(10, 5)
	r2 := c.Get(10, 5)
	if len(r1) != 51 || &r1[0] != &r2[0] {
		t.Error("equal semi-axes should return the cached ring")
	}
	r3 := c.Get(10, 6)
	if &r3[0] == &r1[0] {
		t.Error("different semi-axes should sample a new ring")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if c.Segments() != 50 {
		t.Errorf("Segments = %d", c.Segments())
	}
	if obs.hits["rings"] != 1 || obs.misses["rings"] != 2 {
		t.Errorf("observer: hits %v misses %v", obs.hits, obs.misses)
	}
}

func TestCaches_Concurrent(t *testing.T) {
	pc := NewParamCache(0, nil)
	rc := NewRingCache(0, 0, nil)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				p := pc.Get(defaultAsteroid(), i%13)
				rc.Get(p.SemiMajorAxis, p.SemiMinorAxis)
			}
		}(g)
	}
	wg.Wait()

	if pc.Len() != 13 {
		t.Errorf("param cache Len = %d, want 13", pc.Len())
	}
}
