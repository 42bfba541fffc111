package metrics

import (
	"sync"
	"time"
)

type commandStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type collectionStats struct {
	hits       int
	misses     int
	readErrors int
	dropped    int
}

// Recorder captures lightweight, in-memory metrics about upstream calls and
// cache reads. All methods are nil-receiver safe so call sites never need a
// guard, and an optional OTel layer mirrors everything to real exporters.
type Recorder struct {
	mu          sync.Mutex
	commands    map[string]*commandStats
	collections map[string]*collectionStats
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		commands:    make(map[string]*commandStats),
		collections: make(map[string]*collectionStats),
		otel:        otel,
	}
}

// RecordUpstreamAttempt increments counters for an upstream call and stores
// the last observed latency.
func (r *Recorder) RecordUpstreamAttempt(command string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureCommand(command)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordUpstreamAttempt(command, duration, err)
	}
}

// RecordRateLimit tracks that an upstream response hit a rate limit and
// stores the last Retry-After.
func (r *Recorder) RecordRateLimit(command string, retryAfter time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureCommand(command)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRateLimit(command, retryAfter)
	}
}

// RecordCacheRead tracks a memory-tier hit or a fall-through to disk.
func (r *Recorder) RecordCacheRead(collection string, hit bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureCollection(collection)
	if hit {
		stats.hits++
	} else {
		stats.misses++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCacheRead(collection, hit)
	}
}

// RecordCacheReadError tracks a structural cache read failure.
func (r *Recorder) RecordCacheReadError(collection string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ensureCollection(collection).readErrors++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCacheReadError(collection)
	}
}

// RecordCacheDropped tracks items filtered out by per-entity validation.
func (r *Recorder) RecordCacheDropped(collection string, count int) {
	if r == nil || count <= 0 {
		return
	}
	r.mu.Lock()
	r.ensureCollection(collection).dropped += count
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCacheDropped(collection, count)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics for the gateway surface.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordRefreshCycle tracks refresh pipeline runs and failures.
func (r *Recorder) RecordRefreshCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordRefresh(duration, err)
}

// CommandSnapshot is a copy of the stats for one upstream command.
type CommandSnapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Command(command string) CommandSnapshot {
	if r == nil {
		return CommandSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.commands[command]
	if !ok || stats == nil {
		return CommandSnapshot{}
	}
	return CommandSnapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// CollectionSnapshot is a copy of the stats for one cached collection.
type CollectionSnapshot struct {
	Hits       int
	Misses     int
	ReadErrors int
	Dropped    int
}

func (r *Recorder) Collection(collection string) CollectionSnapshot {
	if r == nil {
		return CollectionSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.collections[collection]
	if !ok || stats == nil {
		return CollectionSnapshot{}
	}
	return CollectionSnapshot{
		Hits:       stats.hits,
		Misses:     stats.misses,
		ReadErrors: stats.readErrors,
		Dropped:    stats.dropped,
	}
}

// ensureCommand must be called with r.mu held.
func (r *Recorder) ensureCommand(command string) *commandStats {
	stats, ok := r.commands[command]
	if !ok {
		stats = &commandStats{}
		r.commands[command] = stats
	}
	return stats
}

// ensureCollection must be called with r.mu held.
func (r *Recorder) ensureCollection(collection string) *collectionStats {
	stats, ok := r.collections[collection]
	if !ok {
		stats = &collectionStats{}
		r.collections[collection] = stats
	}
	return stats
}
