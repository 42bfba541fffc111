package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ffl-gateway-service/internal/cache"
	"ffl-gateway-service/internal/domain"
	"ffl-gateway-service/internal/logging"
	"ffl-gateway-service/internal/metrics"
	"ffl-gateway-service/internal/upstream"
)

// Fetcher is the slice of the upstream client the pipeline needs. None of
// these commands require a session.
type Fetcher interface {
	FetchPlayers(ctx context.Context) ([]domain.Player, error)
	FetchNFLTeams(ctx context.Context) ([]domain.NFLTeam, error)
	FetchSchedule(ctx context.Context) ([]domain.ScheduleGame, error)
}

// Collections lists everything the pipeline knows how to refresh.
var Collections = []cache.Collection{cache.Players, cache.NFLTeams, cache.Schedule}

const defaultRetryBudget = 2 * time.Minute

// Pipeline fetches reference collections from the upstream and rewrites
// their envelope files. It owns the retry policy for its fetches; the
// client itself never retries.
type Pipeline struct {
	fetcher     Fetcher
	writer      *Writer
	source      string
	retryBudget time.Duration
	logger      *slog.Logger
	metrics     *metrics.Recorder
}

// Config controls pipeline construction.
type Config struct {
	Fetcher     Fetcher
	Writer      *Writer
	Source      string
	RetryBudget time.Duration
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
}

// NewPipeline constructs a pipeline with sane defaults.
func NewPipeline(cfg Config) *Pipeline {
	budget := cfg.RetryBudget
	if budget <= 0 {
		budget = defaultRetryBudget
	}
	return &Pipeline{
		fetcher:     cfg.Fetcher,
		writer:      cfg.Writer,
		source:      cfg.Source,
		retryBudget: budget,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
	}
}

// Refresh fetches one collection and rewrites its envelope file.
func (p *Pipeline) Refresh(ctx context.Context, name cache.Collection) error {
	start := time.Now()
	count, err := p.refresh(ctx, name)
	if err != nil {
		logging.Error(p.logger, "collection refresh failed", err,
			slog.String(logging.FieldCollection, string(name)),
		)
		return err
	}
	logging.Info(p.logger, "collection refreshed",
		slog.String(logging.FieldCollection, string(name)),
		slog.Int(logging.FieldCount, count),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return nil
}

// RefreshAll refreshes every collection, continuing past individual
// failures and reporting them joined.
func (p *Pipeline) RefreshAll(ctx context.Context) error {
	start := time.Now()
	var errs []error
	for _, name := range Collections {
		if err := p.Refresh(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	err := errors.Join(errs...)
	p.metrics.RecordRefreshCycle(time.Since(start), err)
	return err
}

func (p *Pipeline) refresh(ctx context.Context, name cache.Collection) (int, error) {
	switch name {
	case cache.Players:
		return refreshCollection(ctx, p, name, p.fetcher.FetchPlayers)
	case cache.NFLTeams:
		return refreshCollection(ctx, p, name, p.fetcher.FetchNFLTeams)
	case cache.Schedule:
		return refreshCollection(ctx, p, name, p.fetcher.FetchSchedule)
	default:
		return 0, fmt.Errorf("refresh: unknown collection %q", name)
	}
}

func refreshCollection[T any](ctx context.Context, p *Pipeline, name cache.Collection, fetch func(context.Context) ([]T, error)) (int, error) {
	var items []T
	err := upstream.WithRetry(ctx, p.logger, p.retryBudget, func() error {
		fetched, fetchErr := fetch(ctx)
		if fetchErr != nil {
			return fetchErr
		}
		items = fetched
		return nil
	})
	if err != nil {
		return 0, err
	}
	if items == nil {
		items = []T{}
	}
	if err := p.writer.WriteCollection(name, p.source, items); err != nil {
		return 0, err
	}
	return len(items), nil
}
