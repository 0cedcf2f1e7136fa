package config

import (
	"fmt"
	"os"
)

// Config holds runtime configuration for the dashboard.
type Config struct {
	Port         string          `yaml:"port"`
	PollInterval Duration        `yaml:"poll_interval"`
	Provider     string          `yaml:"provider"`
	AdminToken   string          `yaml:"admin_token"`
	Log          LogConfig       `yaml:"log"`
	Fixture      FixtureConfig   `yaml:"fixture"`
	CDF          CDFConfig       `yaml:"cdf"`
	Cache        CacheConfig     `yaml:"cache"`
	Metrics      MetricsConfig   `yaml:"metrics"`
	Snapshots    SnapshotsConfig `yaml:"snapshots"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FixtureConfig shapes the offline league.
type FixtureConfig struct {
	Gameweeks int `yaml:"gameweeks"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		Port:         defaultPort,
		PollInterval: defaultPollInterval,
		Provider:     defaultProvider,
		Log:          LogConfig{Level: defaultLogLevel, Format: defaultLogFormat},
		Fixture:      FixtureConfig{Gameweeks: defaultFixtureGWs},
		CDF:          defaultCDF(),
		Cache:        defaultCache(),
		Metrics:      defaultMetrics(),
		Snapshots:    defaultSnapshots(),
	}
}

// Load builds configuration from defaults, the optional CONFIG_FILE overlay and
// environment variables, in that order of precedence.
func Load() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv(envConfigFile); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = envOrDefault(envPort, cfg.Port)
	cfg.PollInterval = durationEnvOrDefault(envPollInterval, cfg.PollInterval)
	cfg.Provider = envOrDefault(envProvider, cfg.Provider)
	cfg.AdminToken = envOrDefault(envAdminToken, cfg.AdminToken)
	cfg.Log.Level = envOrDefault(envLogLevel, cfg.Log.Level)
	cfg.Log.Format = envOrDefault(envLogFormat, cfg.Log.Format)
	cfg.Fixture.Gameweeks = intEnvOrDefault(envFixtureGWs, cfg.Fixture.Gameweeks)
	if cfg.Fixture.Gameweeks > 38 {
		cfg.Fixture.Gameweeks = 38
	}

	cfg.CDF = loadCDF(cfg.CDF)
	cfg.Cache = loadCache(cfg.Cache)
	cfg.Metrics = loadMetrics(cfg.Metrics)
	cfg.Snapshots = loadSnapshots(cfg.Snapshots)
}
