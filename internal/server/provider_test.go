package server

import (
	"testing"

	"github.com/preston-bernstein/fpl-dashboard/internal/config"
	"github.com/preston-bernstein/fpl-dashboard/internal/metrics"
	"github.com/preston-bernstein/fpl-dashboard/internal/providers"
	"github.com/preston-bernstein/fpl-dashboard/internal/providers/cdf"
	"github.com/preston-bernstein/fpl-dashboard/internal/providers/fixture"
	"github.com/preston-bernstein/fpl-dashboard/internal/testutil"
)

func TestSelectProvider(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()

	for _, tc := range []struct {
		name     string
		provider string
		wantCDF  bool
	}{
		{"default", "", false},
		{"fixture", "Fixture", false},
		{"cdf", " cdf ", true},
		{"unknown falls back", "espn", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.Provider = tc.provider
			p := selectProvider(cfg, logger)
			switch p.(type) {
			case *cdf.Client:
				if !tc.wantCDF {
					t.Fatalf("unexpected cdf client")
				}
			case *fixture.Provider:
				if tc.wantCDF {
					t.Fatalf("expected cdf client")
				}
			default:
				t.Fatalf("unexpected provider %T", p)
			}
		})
	}
	if buf.Len() == 0 {
		t.Fatalf("expected warnings for unknown provider and missing credentials")
	}
}

func TestProviderFactoryWrapsWithName(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	cfg := config.Defaults()
	cfg.Provider = "cdf"

	p := newProviderFactory(logger, metrics.NewRecorder()).build(cfg)
	if got := providers.NameOf(p, ""); got != "cdf" {
		t.Fatalf("expected wrapped provider named cdf, got %q", got)
	}
}

func TestProviderName(t *testing.T) {
	if got := providerName(" CDF ", nil); got != "cdf" {
		t.Fatalf("expected normalized name, got %q", got)
	}
	if got := providerName("", fixture.New(1)); got != "*fixture.provider" {
		t.Fatalf("expected type-derived name, got %q", got)
	}
	if got := providerName("", nil); got != "provider" {
		t.Fatalf("expected generic name, got %q", got)
	}
}
