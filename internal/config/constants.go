package config

import "time"

const (
	envConfigFile = "FFL_CONFIG"

	envPort            = "PORT"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envUpstreamHost    = "UPSTREAM_HOST"
	envUpstreamYear    = "UPSTREAM_YEAR"
	envUpstreamClient  = "UPSTREAM_CLIENT_ID"
	envUpstreamTimeout = "UPSTREAM_TIMEOUT"
	envCacheDir        = "CACHE_DIR"
	envPlayersMaxAge   = "CACHE_PLAYERS_MAX_AGE"
	envTeamsMaxAge     = "CACHE_TEAMS_MAX_AGE"
	envScheduleMaxAge  = "CACHE_SCHEDULE_MAX_AGE"
	envRefreshEnabled  = "REFRESH_ENABLED"
	envRefreshInterval = "REFRESH_INTERVAL"
	envSessionTTL      = "SESSION_TTL"
	envMetricsOn       = "METRICS_ENABLED"
	envMetricsPort     = "METRICS_PORT"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort     = "4000"
	defaultCacheDir = "data/cache"
	// The upstream rotates player details slowly; the schedule moves weekly
	// during the season. Ages are deliberately conservative to respect the
	// upstream's request quotas.
	defaultPlayersMaxAge  = 24 * time.Hour
	defaultTeamsMaxAge    = 7 * 24 * time.Hour
	defaultScheduleMaxAge = 24 * time.Hour
	defaultRefreshEnabled = false
	defaultRefreshEvery   = time.Hour
	// The upstream never declares a session expiry; 24h is the
	// application-defined lifetime bound.
	defaultSessionTTL  = 24 * time.Hour
	defaultMetricsPort = "9090"
)
