package cache

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"ffl-gateway-service/internal/domain"
	"ffl-gateway-service/internal/logging"
	"ffl-gateway-service/internal/metrics"
)

// Config controls the reference-data store.
type Config struct {
	Dir     string
	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

// Store is the two-tier reference-data cache: a process-wide memory tier
// over the envelope files the refresh pipeline writes. The memory tier
// exists only to pace disk reads; it never expires on its own and is
// dropped only by explicit invalidation, so staleness always derives from
// the envelope's lastUpdated, not wall-clock-since-memoized.
type Store struct {
	dir     string
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time

	mu      sync.RWMutex
	entries map[Collection]*entry
}

type entry struct {
	meta  Metadata
	items any
}

// NewStore constructs a store reading collection files under cfg.Dir.
func NewStore(cfg Config) *Store {
	return &Store{
		dir:     cfg.Dir,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		now:     time.Now,
		entries: make(map[Collection]*entry),
	}
}

// Players returns the validated player directory, order preserved.
func (s *Store) Players() ([]domain.Player, error) {
	items, _, err := load(s, Players, validPlayer)
	return items, err
}

// PlayerByID returns the directory record for id, if present.
func (s *Store) PlayerByID(id string) (domain.Player, bool, error) {
	players, err := s.Players()
	if err != nil {
		return domain.Player{}, false, err
	}
	for _, p := range players {
		if p.ID == id {
			return p, true, nil
		}
	}
	return domain.Player{}, false, nil
}

// FilterPlayers returns the directory records matching pred, order preserved.
func (s *Store) FilterPlayers(pred func(domain.Player) bool) ([]domain.Player, error) {
	players, err := s.Players()
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Player, 0)
	for _, p := range players {
		if pred(p) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// NFLTeams returns the validated NFL team list.
func (s *Store) NFLTeams() ([]domain.NFLTeam, error) {
	items, _, err := load(s, NFLTeams, validNFLTeam)
	return items, err
}

// ScheduleGames returns the validated NFL schedule.
func (s *Store) ScheduleGames() ([]domain.ScheduleGame, error) {
	items, _, err := load(s, Schedule, validScheduleGame)
	return items, err
}

// Metadata returns the envelope metadata for a collection, loading it if
// necessary.
func (s *Store) Metadata(name Collection) (Metadata, error) {
	switch name {
	case Players:
		_, meta, err := load(s, Players, validPlayer)
		return meta, err
	case NFLTeams:
		_, meta, err := load(s, NFLTeams, validNFLTeam)
		return meta, err
	case Schedule:
		_, meta, err := load(s, Schedule, validScheduleGame)
		return meta, err
	default:
		return Metadata{}, &ReadError{Collection: name, Err: errUnknownCollection}
	}
}

// IsStale reports whether a collection's snapshot is older than maxAge.
func (s *Store) IsStale(name Collection, maxAge time.Duration) (bool, error) {
	meta, err := s.Metadata(name)
	if err != nil {
		return false, err
	}
	return Stale(meta.LastUpdated, maxAge, s.now()), nil
}

// Clear drops the whole memory tier. The map is replaced, not mutated in
// place, so concurrent readers holding the old map see a consistent view.
// The next read re-parses the files: after invalidation the file always
// wins over whatever memory held, even if its lastUpdated regressed.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[Collection]*entry)
	s.mu.Unlock()
}

// Invalidate drops a single collection from the memory tier.
func (s *Store) Invalidate(name Collection) {
	s.mu.Lock()
	next := make(map[Collection]*entry, len(s.entries))
	for key, value := range s.entries {
		if key != name {
			next[key] = value
		}
	}
	s.entries = next
	s.mu.Unlock()
}

// load is the shared read path: memory tier first, then the backing file
// with structural envelope validation and per-item filtering. Only a fully
// parsed, validated result is ever published to the memory tier.
func load[T any](s *Store, name Collection, valid func(T) bool) ([]T, Metadata, error) {
	s.mu.RLock()
	cached, ok := s.entries[name]
	s.mu.RUnlock()
	if ok {
		s.metrics.RecordCacheRead(string(name), true)
		return cached.items.([]T), cached.meta, nil
	}
	s.metrics.RecordCacheRead(string(name), false)

	env, err := readEnvelope(s.dir, name)
	if err != nil {
		s.metrics.RecordCacheReadError(string(name))
		return nil, Metadata{}, err
	}

	items := make([]T, 0, len(env.Data))
	dropped := 0
	for _, raw := range env.Data {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			dropped++
			continue
		}
		if valid != nil && !valid(item) {
			dropped++
			continue
		}
		items = append(items, item)
	}
	if dropped > 0 {
		s.metrics.RecordCacheDropped(string(name), dropped)
		logging.Warn(s.logger, "dropped invalid cache items",
			slog.String(logging.FieldCollection, string(name)),
			slog.Int(logging.FieldCount, dropped),
		)
	}

	s.publish(name, &entry{meta: env.Metadata, items: items})
	return items, env.Metadata, nil
}

func (s *Store) publish(name Collection, e *entry) {
	s.mu.Lock()
	next := make(map[Collection]*entry, len(s.entries)+1)
	for key, value := range s.entries {
		next[key] = value
	}
	next[name] = e
	s.entries = next
	s.mu.Unlock()
}
