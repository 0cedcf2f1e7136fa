package server

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/fpl-dashboard/internal/config"
	"github.com/preston-bernstein/fpl-dashboard/internal/metrics"
	"github.com/preston-bernstein/fpl-dashboard/internal/providers"
	"github.com/preston-bernstein/fpl-dashboard/internal/providers/cdf"
	"github.com/preston-bernstein/fpl-dashboard/internal/providers/fixture"
)

const (
	providerFixture = "fixture"
	providerCDF     = "cdf"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.LeagueProvider {
	switch normalizeProviderName(cfg.Provider) {
	case providerFixture, "":
		return fixture.New(cfg.Fixture.Gameweeks)
	case providerCDF:
		if !cfg.CDF.HasCredentials() && logger != nil {
			logger.Warn("cdf provider without client credentials; requests are unauthenticated",
				slog.String("base_url", cfg.CDF.BaseURL),
			)
		}
		return cdf.NewClient(cdf.Config{
			BaseURL:      cfg.CDF.BaseURL,
			Project:      cfg.CDF.Project,
			Space:        cfg.CDF.Space,
			ViewVersion:  cfg.CDF.ViewVersion,
			RawDB:        cfg.CDF.RawDB,
			TokenURL:     cfg.CDF.TokenURL,
			ClientID:     cfg.CDF.ClientID,
			ClientSecret: cfg.CDF.ClientSecret,
			Scopes:       []string{cfg.CDF.Scope()},
			Logger:       logger,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New(cfg.Fixture.Gameweeks)
	}
}

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.LeagueProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

// wrap applies the upstream rate limit, then retries on top so each attempt
// waits for a token.
func (f providerFactory) wrap(cfg config.Config, base providers.LeagueProvider) providers.LeagueProvider {
	limited := providers.NewRateLimitedProvider(base, cfg.CDF.RPS, cfg.CDF.Burst, f.logger)
	name := providers.NameOf(base, providerName(cfg.Provider, base))
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, name, 0, 0)
}

func normalizeProviderName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// providerName derives a metrics label when the provider does not report one.
func providerName(raw string, provider providers.LeagueProvider) string {
	if name := normalizeProviderName(raw); name != "" {
		return name
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
