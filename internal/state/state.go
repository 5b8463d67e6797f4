// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/litescript/ls-orbits/internal/neo"
)

// EventType represents the type of catalog change event.
type EventType string

const (
	EventAdded         EventType = "ADDED"
	EventRemoved       EventType = "REMOVED"
	EventHazardChanged EventType = "HAZARD_CHANGED"
)

// Event represents a change between two catalog loads.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Hazardous bool      `json:"hazardous"`
}

// Recorder receives state changes, e.g. for metrics.
type Recorder interface {
	ObserveFetch(d time.Duration, err error)
	ObserveCatalog(asteroids []neo.Asteroid)
	SetVisible(n int)
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Current catalog
	entries       []neo.Entry
	hasData       bool
	lastFetch     time.Time
	lastError     error
	fetchDuration time.Duration
	nextRefresh   time.Time

	// View selection
	filter   neo.HazardFilter
	selected string

	// Hazard flag per id from the previous load, for event detection
	prevHazard map[string]bool

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	refreshInterval time.Duration
	limiter         *rate.Limiter
	resetPending    bool
	recorder        Recorder
	now             func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents       int
	RefreshInterval time.Duration

	// ManualRefreshEvery and ManualRefreshBurst limit user-requested refreshes.
	ManualRefreshEvery time.Duration
	ManualRefreshBurst int

	Filter   neo.HazardFilter
	Selected string
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:          50,
		RefreshInterval:    5 * time.Minute,
		ManualRefreshEvery: 2 * time.Second,
		ManualRefreshBurst: 1,
		Filter:             neo.FilterAll,
		Selected:           neo.SelectAll,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	every := cfg.ManualRefreshEvery
	if every <= 0 {
		every = 2 * time.Second
	}
	burst := cfg.ManualRefreshBurst
	if burst <= 0 {
		burst = 1
	}
	return &Manager{
		filter:          cfg.Filter,
		selected:        cfg.Selected,
		prevHazard:      make(map[string]bool),
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		limiter:         rate.NewLimiter(rate.Every(every), burst),
		now:             time.Now,
	}
}

// SetRecorder attaches a recorder. Pass nil to detach.
func (m *Manager) SetRecorder(r Recorder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorder = r
}

// Update records a fetch outcome. On error, or when records is nil, the
// previous catalog stays in place and only the fetch status changes.
func (m *Manager) Update(records []neo.Record, fetchDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.lastFetch = now
	m.lastError = err
	m.fetchDuration = fetchDuration
	if m.refreshInterval > 0 {
		m.nextRefresh = now.Add(m.refreshInterval)
	}
	reset := m.resetPending
	m.resetPending = false

	if m.recorder != nil {
		m.recorder.ObserveFetch(fetchDuration, err)
	}
	if err != nil || records == nil {
		return
	}

	entries := neo.BuildEntries(records)
	if m.hasData {
		m.detectEvents(entries, now)
	}
	m.entries = entries
	m.hasData = true

	m.prevHazard = make(map[string]bool, len(entries))
	for _, e := range entries {
		m.prevHazard[e.ID()] = e.Asteroid.Hazardous
	}

	if reset {
		m.filter = neo.FilterAll
		m.selected = neo.SelectAll
	}

	if m.recorder != nil {
		asteroids := make([]neo.Asteroid, len(entries))
		for i, e := range entries {
			asteroids[i] = e.Asteroid
		}
		m.recorder.ObserveCatalog(asteroids)
	}
	m.publishVisible()
}

// detectEvents compares a new catalog with the previous one.
func (m *Manager) detectEvents(entries []neo.Entry, now time.Time) {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		id := e.ID()
		seen[id] = true
		prev, existed := m.prevHazard[id]
		switch {
		case !existed:
			m.addEvent(Event{Type: EventAdded, Timestamp: now, ID: id, Name: e.Label(), Hazardous: e.Asteroid.Hazardous})
		case prev != e.Asteroid.Hazardous:
			m.addEvent(Event{Type: EventHazardChanged, Timestamp: now, ID: id, Name: e.Label(), Hazardous: e.Asteroid.Hazardous})
		}
	}

	for _, e := range m.entries {
		if !seen[e.ID()] {
			seen[e.ID()] = true
			m.addEvent(Event{Type: EventRemoved, Timestamp: now, ID: e.ID(), Name: e.Label(), Hazardous: e.Asteroid.Hazardous})
		}
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// publishVisible reports the visible count. Callers hold m.mu.
func (m *Manager) publishVisible() {
	if m.recorder == nil {
		return
	}
	m.recorder.SetVisible(len(neo.Visible(neo.Filter(m.entries, m.filter), m.selected)))
}

// Filter returns the hazard filter.
func (m *Manager) Filter() neo.HazardFilter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter
}

// SetFilter sets the hazard filter. The selection is kept even if it no
// longer passes, in which case nothing is visible.
func (m *Manager) SetFilter(f neo.HazardFilter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filter = f
	m.publishVisible()
}

// CycleFilter advances to the next hazard filter and returns it.
func (m *Manager) CycleFilter() neo.HazardFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filter = m.filter.Next()
	m.publishVisible()
	return m.filter
}

// Selected returns the selected id, or neo.SelectAll.
func (m *Manager) Selected() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selected
}

// Select shows a single orbit by id, or all orbits for neo.SelectAll.
func (m *Manager) Select(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = id
	m.publishVisible()
}

// SelectNext steps the selection forward through "all" and then each
// filtered entry in list order, wrapping around.
func (m *Manager) SelectNext() string {
	return m.step(1)
}

// SelectPrev steps the selection backward.
func (m *Manager) SelectPrev() string {
	return m.step(-1)
}

func (m *Manager) step(delta int) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Position 0 is "all"; positions 1..n are the filtered entries.
	filtered := neo.Filter(m.entries, m.filter)
	n := len(filtered) + 1

	pos := 0
	for i, e := range filtered {
		if e.ID() == m.selected {
			pos = i + 1
			break
		}
	}
	pos = ((pos+delta)%n + n) % n

	if pos == 0 {
		m.selected = neo.SelectAll
	} else {
		m.selected = filtered[pos-1].ID()
	}
	m.publishVisible()
	return m.selected
}

// ResetFilters restores the "all" filter and selection.
func (m *Manager) ResetFilters() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filter = neo.FilterAll
	m.selected = neo.SelectAll
	m.publishVisible()
}

// RequestRefresh reports whether a user-requested refresh may proceed. An
// allowed request also resets filter and selection once the next fetch
// succeeds.
func (m *Manager) RequestRefresh() bool {
	if !m.limiter.AllowN(m.now(), 1) {
		return false
	}
	m.mu.Lock()
	m.resetPending = true
	m.mu.Unlock()
	return true
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Entries       []neo.Entry
	Filtered      []neo.Entry
	Visible       []neo.Entry
	Filter        neo.HazardFilter
	Selected      string
	HasData       bool
	LastFetch     time.Time
	LastError     error
	FetchDuration time.Duration
	NextRefresh   time.Time
	Events        []Event
}

// Selection returns the selected entry when exactly one orbit is visible.
func (s Snapshot) Selection() (neo.Entry, bool) {
	if len(s.Visible) != 1 {
		return neo.Entry{}, false
	}
	return s.Visible[0], true
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]neo.Entry, len(m.entries))
	copy(entries, m.entries)
	filtered := neo.Filter(entries, m.filter)

	return Snapshot{
		Entries:       entries,
		Filtered:      filtered,
		Visible:       neo.Visible(filtered, m.selected),
		Filter:        m.filter,
		Selected:      m.selected,
		HasData:       m.hasData,
		LastFetch:     m.lastFetch,
		LastError:     m.lastError,
		FetchDuration: m.fetchDuration,
		NextRefresh:   m.nextRefresh,
		Events:        m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true if we have received at least one successful fetch.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasData
}
