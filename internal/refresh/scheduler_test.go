package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"ffl-gateway-service/internal/cache"
	"ffl-gateway-service/internal/domain"
	"ffl-gateway-service/internal/testutil"
	"ffl-gateway-service/internal/upstream"
)

type stubStore struct {
	stale       map[cache.Collection]bool
	staleErr    map[cache.Collection]error
	invalidated []cache.Collection
}

func (s *stubStore) Invalidate(name cache.Collection) {
	s.invalidated = append(s.invalidated, name)
}

func (s *stubStore) IsStale(name cache.Collection, maxAge time.Duration) (bool, error) {
	if err := s.staleErr[name]; err != nil {
		return false, err
	}
	return s.stale[name], nil
}

func allMaxAges() map[cache.Collection]time.Duration {
	return map[cache.Collection]time.Duration{
		cache.Players:  time.Hour,
		cache.NFLTeams: time.Hour,
		cache.Schedule: time.Hour,
	}
}

func newTestScheduler(pipeline *Pipeline, store Invalidator, maxAges map[cache.Collection]time.Duration) *Scheduler {
	return NewScheduler(pipeline, store, maxAges, time.Hour, testutil.DiscardLogger())
}

func TestRunOnceSkipsFreshCollections(t *testing.T) {
	fetcher := &stubFetcher{}
	store := &stubStore{stale: map[cache.Collection]bool{}}
	s := newTestScheduler(newTestPipeline(t.TempDir(), fetcher), store, allMaxAges())

	s.runOnce(context.Background())
	if fetcher.playerCalls != 0 {
		t.Fatalf("fresh collections must not be refreshed, got %d calls", fetcher.playerCalls)
	}
	if len(store.invalidated) != 0 {
		t.Fatalf("nothing should be invalidated, got %v", store.invalidated)
	}
	if !s.Status().IsReady() {
		t.Fatal("a pass with nothing to do counts as success")
	}
}

func TestRunOnceRefreshesStaleAndInvalidates(t *testing.T) {
	fetcher := &stubFetcher{players: []domain.Player{{ID: "1", Name: "N", Position: "QB", Team: "FA"}}}
	store := &stubStore{stale: map[cache.Collection]bool{cache.Players: true}}
	s := newTestScheduler(newTestPipeline(t.TempDir(), fetcher), store, allMaxAges())

	s.runOnce(context.Background())
	if fetcher.playerCalls != 1 {
		t.Fatalf("expected one players refresh, got %d", fetcher.playerCalls)
	}
	if len(store.invalidated) != 1 || store.invalidated[0] != cache.Players {
		t.Fatalf("expected players invalidated after the write, got %v", store.invalidated)
	}
}

func TestRunOnceRepairsUnreadableEnvelope(t *testing.T) {
	fetcher := &stubFetcher{}
	store := &stubStore{staleErr: map[cache.Collection]error{
		cache.Players: &cache.ReadError{Collection: cache.Players, Err: errors.New("missing")},
	}}
	s := newTestScheduler(newTestPipeline(t.TempDir(), fetcher), store, allMaxAges())

	s.runOnce(context.Background())
	if fetcher.playerCalls != 1 {
		t.Fatalf("an unreadable envelope must trigger a refresh, got %d calls", fetcher.playerCalls)
	}
}

func TestRunOnceIgnoresCollectionsWithoutMaxAge(t *testing.T) {
	fetcher := &stubFetcher{}
	store := &stubStore{stale: map[cache.Collection]bool{cache.Players: true}}
	s := newTestScheduler(newTestPipeline(t.TempDir(), fetcher), store, nil)

	s.runOnce(context.Background())
	if fetcher.playerCalls != 0 {
		t.Fatalf("collections without a max age are never refreshed, got %d calls", fetcher.playerCalls)
	}
}

func TestRunOnceFailureDoesNotInvalidate(t *testing.T) {
	fetcher := &stubFetcher{playersErr: &upstream.ServerError{StatusCode: 500, Reason: "down"}}
	store := &stubStore{stale: map[cache.Collection]bool{cache.Players: true}}
	s := newTestScheduler(newTestPipeline(t.TempDir(), fetcher), store, allMaxAges())

	s.runOnce(context.Background())
	if len(store.invalidated) != 0 {
		t.Fatalf("a failed refresh must not drop the memory tier, got %v", store.invalidated)
	}
	status := s.Status()
	if status.ConsecutiveFailures != 1 || status.LastError == "" {
		t.Fatalf("unexpected status %+v", status)
	}
	if status.IsReady() {
		t.Fatal("no success yet, scheduler must not report ready")
	}
}

func TestStatusReadiness(t *testing.T) {
	var s Status
	if s.IsReady() {
		t.Fatal("zero status is not ready")
	}
	s.LastSuccess = time.Now()
	if !s.IsReady() {
		t.Fatal("a recent success with no failures is ready")
	}
	s.ConsecutiveFailures = 3
	if s.IsReady() {
		t.Fatal("three consecutive failures mark the scheduler unready")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s := newTestScheduler(newTestPipeline(t.TempDir(), &stubFetcher{}), &stubStore{}, allMaxAges())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("second stop must be a no-op: %v", err)
	}
}
