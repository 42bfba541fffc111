package cache

import (
	"testing"
	"time"
)

func TestStale(t *testing.T) {
	now := time.Unix(2000, 0)
	cases := []struct {
		lastUpdated int64
		maxAge      time.Duration
		want        bool
	}{
		{1900, 100 * time.Second, false},
		{1900, 99 * time.Second, true},
		{2000, 0, false},
		{1999, 0, true},
		{0, time.Hour, false},
		{0, 30 * time.Minute, true},
	}
	for _, tc := range cases {
		if got := Stale(tc.lastUpdated, tc.maxAge, now); got != tc.want {
			t.Fatalf("Stale(%d, %v) = %v, want %v", tc.lastUpdated, tc.maxAge, got, tc.want)
		}
	}
}

func TestParseEnvelopeRoundTrip(t *testing.T) {
	env, err := parseEnvelope([]byte(`{
		"metadata": {"lastUpdated": 42, "version": "1", "source": "api.test.com"},
		"data": [{"id": "a"}, {"id": "b"}]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Metadata.LastUpdated != 42 || env.Metadata.Version != "1" {
		t.Fatalf("unexpected metadata %+v", env.Metadata)
	}
	if len(env.Data) != 2 {
		t.Fatalf("expected 2 raw items, got %d", len(env.Data))
	}
}
