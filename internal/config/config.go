package config

// Config holds runtime configuration for the gateway. Values come from an
// optional YAML file named by FFL_CONFIG, with environment variables taking
// precedence over both the file and the defaults.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Cache    CacheConfig    `yaml:"cache"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Session  SessionConfig  `yaml:"session"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig holds the gateway HTTP listener settings.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// UpstreamConfig holds the upstream platform connection settings.
type UpstreamConfig struct {
	Host     string   `yaml:"host"`
	Year     int      `yaml:"year"`
	ClientID string   `yaml:"client_id"`
	Timeout  Duration `yaml:"timeout"`
}

// CacheConfig holds reference-cache settings. Max ages feed staleness
// checks only; the cache itself never refreshes.
type CacheConfig struct {
	Dir            string   `yaml:"dir"`
	PlayersMaxAge  Duration `yaml:"players_max_age"`
	TeamsMaxAge    Duration `yaml:"teams_max_age"`
	ScheduleMaxAge Duration `yaml:"schedule_max_age"`
}

// RefreshConfig holds in-server refresh scheduler settings. The pipeline is
// also runnable standalone via cmd/refresh regardless of Enabled.
type RefreshConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Interval Duration `yaml:"interval"`
}

// SessionConfig bounds session lifetime client-side.
type SessionConfig struct {
	TTL Duration `yaml:"ttl"`
}

// MetricsConfig holds telemetry export settings.
type MetricsConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Port         string `yaml:"port"`
	ServiceName  string `yaml:"service_name"`
	OtlpEndpoint string `yaml:"otlp_endpoint"`
	OtlpInsecure bool   `yaml:"otlp_insecure"`
}

// Load reads configuration from the optional YAML file and environment
// variables with sensible defaults.
func Load() Config {
	cfg := defaults()
	if path := envOrDefault(envConfigFile, ""); path != "" {
		applyFile(&cfg, path)
	}
	applyEnv(&cfg)
	return cfg
}

func defaults() Config {
	return Config{
		Server: ServerConfig{Port: defaultPort},
		Cache: CacheConfig{
			Dir:            defaultCacheDir,
			PlayersMaxAge:  Duration(defaultPlayersMaxAge),
			TeamsMaxAge:    Duration(defaultTeamsMaxAge),
			ScheduleMaxAge: Duration(defaultScheduleMaxAge),
		},
		Refresh: RefreshConfig{
			Enabled:  defaultRefreshEnabled,
			Interval: Duration(defaultRefreshEvery),
		},
		Session: SessionConfig{TTL: Duration(defaultSessionTTL)},
		Metrics: MetricsConfig{Port: defaultMetricsPort},
	}
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = envOrDefault(envPort, cfg.Server.Port)
	cfg.Log.Level = envOrDefault(envLogLevel, cfg.Log.Level)
	cfg.Log.Format = envOrDefault(envLogFormat, cfg.Log.Format)
	cfg.Upstream.Host = envOrDefault(envUpstreamHost, cfg.Upstream.Host)
	cfg.Upstream.Year = intEnvOrDefault(envUpstreamYear, cfg.Upstream.Year)
	cfg.Upstream.ClientID = envOrDefault(envUpstreamClient, cfg.Upstream.ClientID)
	cfg.Upstream.Timeout = Duration(durationEnvOrDefault(envUpstreamTimeout, cfg.Upstream.Timeout.Std()))
	cfg.Cache.Dir = envOrDefault(envCacheDir, cfg.Cache.Dir)
	cfg.Cache.PlayersMaxAge = Duration(durationEnvOrDefault(envPlayersMaxAge, cfg.Cache.PlayersMaxAge.Std()))
	cfg.Cache.TeamsMaxAge = Duration(durationEnvOrDefault(envTeamsMaxAge, cfg.Cache.TeamsMaxAge.Std()))
	cfg.Cache.ScheduleMaxAge = Duration(durationEnvOrDefault(envScheduleMaxAge, cfg.Cache.ScheduleMaxAge.Std()))
	cfg.Refresh.Enabled = boolEnvOrDefault(envRefreshEnabled, cfg.Refresh.Enabled)
	cfg.Refresh.Interval = Duration(durationEnvOrDefault(envRefreshInterval, cfg.Refresh.Interval.Std()))
	cfg.Session.TTL = Duration(durationEnvOrDefault(envSessionTTL, cfg.Session.TTL.Std()))
	cfg.Metrics.Enabled = boolEnvOrDefault(envMetricsOn, cfg.Metrics.Enabled)
	cfg.Metrics.Port = envOrDefault(envMetricsPort, cfg.Metrics.Port)
	cfg.Metrics.ServiceName = envOrDefault(envOtelService, cfg.Metrics.ServiceName)
	cfg.Metrics.OtlpEndpoint = envOrDefault(envOtelEndpoint, cfg.Metrics.OtlpEndpoint)
	cfg.Metrics.OtlpInsecure = boolEnvOrDefault(envOtelInsecure, cfg.Metrics.OtlpInsecure)
}
