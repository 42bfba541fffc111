package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ffl-gateway-service/internal/cache"
	"ffl-gateway-service/internal/logging"
)

const defaultInterval = time.Hour

// Invalidator is the slice of the cache store the scheduler needs to drop
// the memory tier after rewriting a file.
type Invalidator interface {
	Invalidate(name cache.Collection)
	IsStale(name cache.Collection, maxAge time.Duration) (bool, error)
}

// Scheduler periodically runs the pipeline for collections whose envelope
// has gone stale, then invalidates the memory tier so the next read picks
// up the new file. It is the only component that ever triggers a refresh;
// the cache itself never does.
type Scheduler struct {
	pipeline *Pipeline
	store    Invalidator
	maxAges  map[cache.Collection]time.Duration
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the scheduler loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the scheduler has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// NewScheduler constructs a scheduler with sane defaults.
func NewScheduler(pipeline *Pipeline, store Invalidator, maxAges map[cache.Collection]time.Duration, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{
		pipeline: pipeline,
		store:    store,
		maxAges:  maxAges,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins the refresh loop until the context is cancelled or Stop is
// called.
func (s *Scheduler) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.startMu.Unlock()

	s.ticker = time.NewTicker(s.interval)

	go func() {
		logging.Info(s.logger, "refresh scheduler started",
			slog.Int64(logging.FieldDurationMS, s.interval.Milliseconds()),
		)
		// Initial pass to repair missing or stale files on boot.
		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				s.stopTicker()
				logging.Info(s.logger, "refresh scheduler stopped")
				return
			case <-s.done:
				s.stopTicker()
				logging.Info(s.logger, "refresh scheduler stopped")
				return
			case <-s.ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (s *Scheduler) Stop(ctx context.Context) error {
	_ = ctx
	s.stopOnce.Do(func() {
		close(s.done)
		s.stopTicker()
	})
	return nil
}

func (s *Scheduler) runOnce(ctx context.Context) {
	start := s.now()
	s.recordAttempt(start)

	var failed bool
	for _, name := range Collections {
		if !s.needsRefresh(name) {
			continue
		}
		if err := s.pipeline.Refresh(ctx, name); err != nil {
			failed = true
			s.recordFailure(err, start)
			continue
		}
		// Drop the memory tier only after a successful write: the file
		// always wins over memory on invalidation.
		s.store.Invalidate(name)
	}
	if !failed {
		s.recordSuccess(start)
	}
}

// needsRefresh treats an unreadable envelope (missing file, corruption) the
// same as a stale one: both are repaired by rewriting the file.
func (s *Scheduler) needsRefresh(name cache.Collection) bool {
	maxAge, ok := s.maxAges[name]
	if !ok {
		return false
	}
	stale, err := s.store.IsStale(name, maxAge)
	if err != nil {
		return true
	}
	return stale
}

func (s *Scheduler) stopTicker() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
}

func (s *Scheduler) recordAttempt(at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.LastAttempt = at
}

func (s *Scheduler) recordSuccess(at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
	s.status.LastSuccess = at
}

func (s *Scheduler) recordFailure(err error, at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures++
	if err != nil {
		s.status.LastError = err.Error()
	}
	s.status.LastAttempt = at
}

// Status returns a snapshot of the scheduler's recent health.
func (s *Scheduler) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}
