package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != "4000" {
		t.Fatalf("expected default port 4000, got %q", cfg.Server.Port)
	}
	if cfg.Cache.Dir != "data/cache" {
		t.Fatalf("unexpected cache dir %q", cfg.Cache.Dir)
	}
	if cfg.Cache.PlayersMaxAge.Std() != 24*time.Hour {
		t.Fatalf("unexpected players max age %v", cfg.Cache.PlayersMaxAge)
	}
	if cfg.Cache.TeamsMaxAge.Std() != 7*24*time.Hour {
		t.Fatalf("unexpected teams max age %v", cfg.Cache.TeamsMaxAge)
	}
	if cfg.Refresh.Enabled {
		t.Fatal("refresh is off by default")
	}
	if cfg.Session.TTL.Std() != 24*time.Hour {
		t.Fatalf("unexpected session TTL %v", cfg.Session.TTL)
	}
	if cfg.Metrics.Port != "9090" {
		t.Fatalf("unexpected metrics port %q", cfg.Metrics.Port)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("UPSTREAM_HOST", "www77.test.com")
	t.Setenv("UPSTREAM_YEAR", "2024")
	t.Setenv("CACHE_PLAYERS_MAX_AGE", "2h")
	t.Setenv("REFRESH_ENABLED", "true")
	t.Setenv("SESSION_TTL", "1h")

	cfg := Load()
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Upstream.Host != "www77.test.com" || cfg.Upstream.Year != 2024 {
		t.Fatalf("unexpected upstream config %+v", cfg.Upstream)
	}
	if cfg.Cache.PlayersMaxAge.Std() != 2*time.Hour {
		t.Fatalf("unexpected players max age %v", cfg.Cache.PlayersMaxAge)
	}
	if !cfg.Refresh.Enabled {
		t.Fatal("expected refresh enabled")
	}
	if cfg.Session.TTL.Std() != time.Hour {
		t.Fatalf("unexpected session TTL %v", cfg.Session.TTL)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9999"
upstream:
  host: filehost.test.com
  year: 2023
refresh:
  enabled: true
  interval: 30m
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FFL_CONFIG", path)

	cfg := Load()
	if cfg.Server.Port != "9999" {
		t.Fatalf("expected file port 9999, got %q", cfg.Server.Port)
	}
	if cfg.Upstream.Host != "filehost.test.com" || cfg.Upstream.Year != 2023 {
		t.Fatalf("unexpected upstream config %+v", cfg.Upstream)
	}
	if !cfg.Refresh.Enabled || cfg.Refresh.Interval.Std() != 30*time.Minute {
		t.Fatalf("unexpected refresh config %+v", cfg.Refresh)
	}
	// Defaults untouched by the file survive.
	if cfg.Cache.Dir != "data/cache" {
		t.Fatalf("unexpected cache dir %q", cfg.Cache.Dir)
	}
}

func TestFileDurationAsIntegerSeconds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("session:\n  ttl: 3600\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FFL_CONFIG", path)

	cfg := Load()
	if cfg.Session.TTL.Std() != time.Hour {
		t.Fatalf("integer durations are seconds, got %v", cfg.Session.TTL)
	}
}

func TestEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: \"9999\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FFL_CONFIG", path)
	t.Setenv("PORT", "8080")

	cfg := Load()
	if cfg.Server.Port != "8080" {
		t.Fatalf("environment must win over the file, got %q", cfg.Server.Port)
	}
}

func TestMissingConfigFileIgnored(t *testing.T) {
	t.Setenv("FFL_CONFIG", filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	cfg := Load()
	if cfg.Server.Port != "4000" {
		t.Fatalf("missing file must fall back to defaults, got %q", cfg.Server.Port)
	}
}

func TestDurationEnvRejectsBadValues(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")
	cfg := Load()
	if cfg.Session.TTL.Std() != 24*time.Hour {
		t.Fatalf("bad duration must keep the default, got %v", cfg.Session.TTL)
	}

	t.Setenv("SESSION_TTL", "-5m")
	cfg = Load()
	if cfg.Session.TTL.Std() != 24*time.Hour {
		t.Fatalf("negative duration must keep the default, got %v", cfg.Session.TTL)
	}
}

func TestBoolEnvParsing(t *testing.T) {
	cases := map[string]bool{
		"1": true, "true": true, "TRUE": true, "yes": true,
		"0": false, "false": false, "no": false,
		"maybe": false,
	}
	for raw, want := range cases {
		t.Setenv("REFRESH_ENABLED", raw)
		if got := boolEnvOrDefault("REFRESH_ENABLED", false); got != want {
			t.Fatalf("boolEnvOrDefault(%q) = %v, want %v", raw, got, want)
		}
	}
}
