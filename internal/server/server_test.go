package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ffl-gateway-service/internal/cache"
	"ffl-gateway-service/internal/config"
	"ffl-gateway-service/internal/metrics"
	"ffl-gateway-service/internal/testutil"
)

func testConfig() config.Config {
	cfg := config.Config{}
	cfg.Server.Port = "4000"
	cfg.Upstream.Host = "api.test.com"
	cfg.Upstream.Year = 2025
	cfg.Cache.Dir = "data/cache"
	cfg.Cache.PlayersMaxAge = config.Duration(time.Hour)
	cfg.Cache.TeamsMaxAge = config.Duration(2 * time.Hour)
	cfg.Cache.ScheduleMaxAge = config.Duration(3 * time.Hour)
	return cfg
}

func TestNewWiresListener(t *testing.T) {
	srv := New(testConfig(), testutil.DiscardLogger())

	if srv.httpServer.Addr() != ":4000" {
		t.Fatalf("unexpected listener addr %q", srv.httpServer.Addr())
	}
	if srv.httpServer.Handler() == nil {
		t.Fatal("expected a wired handler")
	}
	if srv.scheduler != nil {
		t.Fatal("scheduler must be nil when refresh is disabled")
	}
	if srv.metricsServer != nil {
		t.Fatal("metrics server must be nil when metrics are disabled")
	}
}

func TestNewWiresScheduler(t *testing.T) {
	cfg := testConfig()
	cfg.Refresh.Enabled = true
	cfg.Refresh.Interval = config.Duration(time.Minute)

	srv := New(cfg, testutil.DiscardLogger())
	if srv.scheduler == nil {
		t.Fatal("expected a scheduler when refresh is enabled")
	}
}

func TestNewServesHealth(t *testing.T) {
	srv := New(testConfig(), testutil.DiscardLogger())

	rec := httptest.NewRecorder()
	srv.httpServer.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", rec.Code)
	}
}

func TestMetricsSetupFailureFallsBack(t *testing.T) {
	original := metricsSetup
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("exporter unavailable")
	}
	defer func() { metricsSetup = original }()

	cfg := testConfig()
	cfg.Metrics.Enabled = true
	srv := New(cfg, testutil.DiscardLogger())
	if srv.metrics == nil {
		t.Fatal("expected a fallback recorder")
	}
	if srv.metricsServer != nil {
		t.Fatal("no metrics server after setup failure")
	}
}

func TestBuildHTTPClient(t *testing.T) {
	if buildHTTPClient(0) != nil {
		t.Fatal("zero timeout delegates to the client default")
	}
	client := buildHTTPClient(5 * time.Second)
	if client == nil || client.Timeout != 5*time.Second {
		t.Fatalf("unexpected client %+v", client)
	}
}

func TestMaxAges(t *testing.T) {
	ages := maxAges(testConfig().Cache)
	if ages[cache.Players] != time.Hour || ages[cache.NFLTeams] != 2*time.Hour || ages[cache.Schedule] != 3*time.Hour {
		t.Fatalf("unexpected max ages %v", ages)
	}
}
