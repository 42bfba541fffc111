package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ffl-gateway-service/internal/cache"
	"ffl-gateway-service/internal/config"
	"ffl-gateway-service/internal/httpapi"
	"ffl-gateway-service/internal/logging"
	"ffl-gateway-service/internal/metrics"
	"ffl-gateway-service/internal/refresh"
	"ffl-gateway-service/internal/upstream"
)

// envelopeVersion stamps cache files written by the in-server scheduler.
const envelopeVersion = "1"

var metricsSetup = metrics.Setup

// Server owns the gateway process: the upstream client, the reference
// cache, the optional refresh scheduler, and the HTTP listeners.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	client        *upstream.Client
	store         *cache.Store
	scheduler     *refresh.Scheduler
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a fully wired server from configuration.
func New(cfg config.Config, logger *slog.Logger) *Server {
	recorder, metricsSrv, metricsStop := buildMetrics(cfg, logger)

	client := upstream.NewClient(upstream.Config{
		Host:       cfg.Upstream.Host,
		Year:       cfg.Upstream.Year,
		UserAgent:  cfg.Upstream.ClientID,
		HTTPClient: buildHTTPClient(cfg.Upstream.Timeout.Std()),
		SessionTTL: cfg.Session.TTL.Std(),
		Logger:     logger,
		Metrics:    recorder,
	})

	store := cache.NewStore(cache.Config{
		Dir:     cfg.Cache.Dir,
		Logger:  logger,
		Metrics: recorder,
	})

	var scheduler *refresh.Scheduler
	var statusFn func() refresh.Status
	if cfg.Refresh.Enabled {
		pipeline := refresh.NewPipeline(refresh.Config{
			Fetcher: client,
			Writer:  refresh.NewWriter(cfg.Cache.Dir, envelopeVersion),
			Source:  client.Host(),
			Logger:  logger,
			Metrics: recorder,
		})
		scheduler = refresh.NewScheduler(pipeline, store, maxAges(cfg.Cache), cfg.Refresh.Interval.Std(), logger)
		statusFn = scheduler.Status
	}

	handler := httpapi.NewHandler(client, store, statusFn, logger)
	wrapped := httpapi.LoggingMiddleware(logger, recorder, httpapi.NewRouter(handler))

	httpSrv := netHTTPServer{srv: &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		client:        client,
		store:         store,
		scheduler:     scheduler,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsStop,
	}
}

// Run starts the listeners and the scheduler, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.scheduler != nil {
		s.scheduler.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")
	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.scheduler != nil {
		if err := s.scheduler.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop refresh scheduler", err)
		}
	}
	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}
	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{srv: &http.Server{
			Addr:    ":" + recCfg.Port,
			Handler: handler,
		}}
	}
	return rec, metricsSrv, shutdown
}

func buildHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		return nil
	}
	return &http.Client{Timeout: timeout}
}

func maxAges(cfg config.CacheConfig) map[cache.Collection]time.Duration {
	return map[cache.Collection]time.Duration{
		cache.Players:  cfg.PlayersMaxAge.Std(),
		cache.NFLTeams: cfg.TeamsMaxAge.Std(),
		cache.Schedule: cfg.ScheduleMaxAge.Std(),
	}
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}
