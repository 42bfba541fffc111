package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ffl-gateway-service/internal/cache"
	"ffl-gateway-service/internal/config"
	"ffl-gateway-service/internal/logging"
	"ffl-gateway-service/internal/refresh"
	"ffl-gateway-service/internal/upstream"
)

const envelopeVersion = "1"

// Standalone refresh pipeline: fetches the reference collections from the
// upstream and rewrites the cache files, independently of any running
// gateway (which picks up new files on its next invalidated read).
func main() {
	only := flag.String("only", "", "refresh a single collection (players, nflTeams, nflSchedule)")
	flag.Parse()

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "ffl-refresh",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := upstream.NewClient(upstream.Config{
		Host:       cfg.Upstream.Host,
		Year:       cfg.Upstream.Year,
		UserAgent:  cfg.Upstream.ClientID,
		HTTPClient: httpClient(cfg),
		Logger:     logger,
	})
	pipeline := refresh.NewPipeline(refresh.Config{
		Fetcher: client,
		Writer:  refresh.NewWriter(cfg.Cache.Dir, envelopeVersion),
		Source:  client.Host(),
		Logger:  logger,
	})

	var err error
	if *only != "" {
		err = pipeline.Refresh(ctx, cache.Collection(*only))
	} else {
		err = pipeline.RefreshAll(ctx)
	}
	if err != nil {
		logging.Error(logger, "refresh failed", err)
		os.Exit(1)
	}
}

func httpClient(cfg config.Config) *http.Client {
	if cfg.Upstream.Timeout <= 0 {
		return nil
	}
	return &http.Client{Timeout: cfg.Upstream.Timeout.Std()}
}
