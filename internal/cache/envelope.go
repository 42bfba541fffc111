package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Collection names the reference-data collections the cache knows about.
// One file per collection, written by the refresh pipeline.
type Collection string

const (
	Players  Collection = "players"
	NFLTeams Collection = "nflTeams"
	Schedule Collection = "nflSchedule"
)

// FilePath returns the backing file for a collection under dir.
func FilePath(dir string, name Collection) string {
	return filepath.Join(dir, string(name)+".json")
}

// Metadata describes a cached collection snapshot.
type Metadata struct {
	LastUpdated int64  `json:"lastUpdated"`
	Version     string `json:"version"`
	Source      string `json:"source"`
}

// Envelope wraps every cached collection file: metadata plus a data array.
// Data is always an array, possibly empty; anything else fails structural
// validation and the whole read is rejected.
type Envelope struct {
	Metadata Metadata          `json:"metadata"`
	Data     []json.RawMessage `json:"data"`
}

// Stale reports whether a snapshot refreshed at lastUpdated (unix seconds)
// has exceeded maxAge at the given instant. Pure; the cache never triggers
// refreshes itself.
func Stale(lastUpdated int64, maxAge time.Duration, now time.Time) bool {
	age := now.Unix() - lastUpdated
	return age > int64(maxAge/time.Second)
}

func readEnvelope(dir string, name Collection) (*Envelope, error) {
	data, err := os.ReadFile(FilePath(dir, name))
	if err != nil {
		return nil, &ReadError{Collection: name, Err: err}
	}
	env, err := parseEnvelope(data)
	if err != nil {
		return nil, &ReadError{Collection: name, Err: err}
	}
	return env, nil
}

func parseEnvelope(data []byte) (*Envelope, error) {
	var probe struct {
		Metadata *Metadata       `json:"metadata"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}
	if probe.Metadata == nil {
		return nil, errors.New("envelope missing metadata")
	}
	trimmed := bytes.TrimSpace(probe.Data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("envelope data is not an array")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("envelope data is not an array: %w", err)
	}
	return &Envelope{Metadata: probe.Metadata.clone(), Data: items}, nil
}

func (m *Metadata) clone() Metadata {
	if m == nil {
		return Metadata{}
	}
	return *m
}
