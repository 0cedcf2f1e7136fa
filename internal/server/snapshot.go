package server

import (
	"context"
	"errors"
	"log/slog"

	appleague "github.com/preston-bernstein/fpl-dashboard/internal/app/league"
	"github.com/preston-bernstein/fpl-dashboard/internal/cache"
	"github.com/preston-bernstein/fpl-dashboard/internal/config"
	"github.com/preston-bernstein/fpl-dashboard/internal/metrics"
	"github.com/preston-bernstein/fpl-dashboard/internal/poller"
	"github.com/preston-bernstein/fpl-dashboard/internal/providers"
)

// ErrSnapshotsDisabled is returned when a one-off snapshot is requested but
// snapshots are turned off.
var ErrSnapshotsDisabled = errors.New("snapshots are disabled")

// WriteSnapshot fetches the league once through a private memory cache and
// writes today's snapshot.
func WriteSnapshot(ctx context.Context, cfg config.Config, logger *slog.Logger) (poller.Cycle, error) {
	recorder := metrics.NewRecorder()
	return writeSnapshot(ctx, cfg, logger, newProviderFactory(logger, recorder).build(cfg), recorder)
}

func writeSnapshot(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.LeagueProvider, recorder *metrics.Recorder) (poller.Cycle, error) {
	snaps := buildSnapshots(cfg.Snapshots)
	if snaps.writer == nil {
		return poller.Cycle{}, ErrSnapshotsDisabled
	}
	store := cache.NewMemoryCache(0)
	defer store.Close()

	svc := appleague.NewService(provider, store, appleague.Options{
		TTL:     cfg.Cache.TTL,
		Logger:  logger,
		Metrics: recorder,
	})
	cycle, err := poller.New(svc, snaps.writer, logger, recorder, cfg.PollInterval).Refresh(ctx)
	if err != nil {
		return cycle, err
	}
	if !cycle.Snapshot {
		return cycle, errors.New("snapshot was not written")
	}
	return cycle, nil
}
