package config

import "time"

const (
	envConfigFile   = "CONFIG_FILE"
	envPort         = "PORT"
	envPollInterval = "POLL_INTERVAL"
	envProvider     = "PROVIDER"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envAdminToken   = "ADMIN_TOKEN"
	envFixtureGWs   = "FIXTURE_GAMEWEEKS"

	envCDFCluster      = "CDF_CLUSTER"
	envCDFProject      = "CDF_PROJECT"
	envCDFBaseURL      = "CDF_BASE_URL"
	envCDFTokenURL     = "CDF_TOKEN_URL"
	envCDFClientID     = "CDF_CLIENT_ID"
	envCDFClientSecret = "CDF_CLIENT_SECRET"
	envCDFSpace        = "CDF_SPACE"
	envCDFViewVersion  = "CDF_VIEW_VERSION"
	envCDFRawDB        = "CDF_RAW_DB"
	envUpstreamRPS     = "UPSTREAM_RPS"
	envUpstreamBurst   = "UPSTREAM_BURST"

	envCacheTTL      = "CACHE_TTL"
	envCacheBackend  = "CACHE_BACKEND"
	envRedisAddr     = "REDIS_ADDR"
	envRedisPassword = "REDIS_PASSWORD"
	envRedisDB       = "REDIS_DB"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	envSnapshotEnabled   = "SNAPSHOT_ENABLED"
	envSnapshotDir       = "SNAPSHOT_DIR"
	envSnapshotRetention = "SNAPSHOT_RETENTION_DAYS"

	defaultPort         = "8080"
	defaultPollInterval = 15 * Duration(time.Minute)
	defaultProvider     = "fixture"
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultFixtureGWs   = 20

	defaultCDFCluster     = "bluefield"
	defaultCDFProject     = "sofie-prod"
	defaultCDFSpace       = "fantasy_football"
	defaultCDFViewVersion = "1"
	defaultCDFRawDB       = "fantasy_football"
	// CDF project quotas are generous but shared; keep the dashboard polite.
	defaultUpstreamRPS   = 5
	defaultUpstreamBurst = 10

	defaultCacheTTL     = Duration(time.Hour)
	defaultCacheBackend = "memory"
	defaultRedisAddr    = "localhost:6379"

	defaultMetricsPort = "9090"
	defaultServiceName = "fpl-dashboard"

	defaultSnapshotEnabled   = true
	defaultSnapshotDir       = "data/snapshots"
	defaultSnapshotRetention = 14
)
