package nestegg

import (
	"errors"
	"sync"
	"time"
)

// ErrRateLimited is returned when the sliding-window call gate rejects a
// datastore call. Callers surface it as a cooldown message; it is never a
// reason to crash the pipeline.
var ErrRateLimited = errors.New("rate limited: call ceiling reached for the current window")

const (
	// DefaultGateLimit is the ceiling of datastore calls per gate window.
	DefaultGateLimit = 50
	// DefaultGateWindow is the width of the sliding rate-gate window.
	DefaultGateWindow = 60 * time.Second
	// DefaultCacheTTL is the freshness window of the range cache.
	DefaultCacheTTL = 60 * time.Second
)

// CallGate is a sliding-window call-rate guard shared by every client of the
// remote datastore. It is process-wide state with a bounded lifetime: only
// the call timestamps inside the current window are retained.
type CallGate struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	now    func() time.Time
	calls  []time.Time
}

// NewCallGate creates a gate; non-positive arguments select the defaults.
func NewCallGate(limit int, window time.Duration) *CallGate {
	if limit <= 0 {
		limit = DefaultGateLimit
	}
	if window <= 0 {
		window = DefaultGateWindow
	}
	return &CallGate{limit: limit, window: window, now: time.Now}
}

// Record registers one outgoing call, or returns ErrRateLimited when the
// window is already at its ceiling. Rejected calls are not recorded.
func (g *CallGate) Record() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	cutoff := now.Add(-g.window)
	kept := g.calls[:0]
	for _, t := range g.calls {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	g.calls = kept

	if len(g.calls) >= g.limit {
		return ErrRateLimited
	}
	g.calls = append(g.calls, now)
	return nil
}

// RangeCache is a freshness-windowed cache of raw datastore rows, keyed by
// range identifier. Cached rows are shared between overlapping requests, so
// they must never be mutated by readers.
type RangeCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	rows [][]string
	at   time.Time
}

// NewRangeCache creates a cache; a non-positive ttl selects the default.
func NewRangeCache(ttl time.Duration) *RangeCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RangeCache{ttl: ttl, now: time.Now, entries: make(map[string]cacheEntry)}
}

// Get returns the cached rows for a range id if they are still fresh.
func (c *RangeCache) Get(rangeID string) ([][]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[rangeID]
	if !ok || c.now().Sub(e.at) > c.ttl {
		return nil, false
	}
	return e.rows, true
}

// Put stores rows for a range id, stamping them with the current time.
func (c *RangeCache) Put(rangeID string, rows [][]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[rangeID] = cacheEntry{rows: rows, at: c.now()}
}
