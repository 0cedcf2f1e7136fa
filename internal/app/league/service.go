// Package league serves provider datasets through a read-through cache.
package league

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/fpl-dashboard/internal/cache"
	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
	"github.com/preston-bernstein/fpl-dashboard/internal/logging"
	"github.com/preston-bernstein/fpl-dashboard/internal/metrics"
	"github.com/preston-bernstein/fpl-dashboard/internal/providers"
)

// Cache views double as metric labels and key prefixes.
const (
	ViewManagers        = "managers"
	ViewPerformance     = "performance"
	ViewTeamPreferences = "team_preferences"
	ViewTeams           = "teams"
	ViewTransfers       = "transfers"
	ViewPlayers         = "players"
	ViewPicks           = "picks"
	ViewPlayerPoints    = "player_points"
)

const defaultTTL = time.Hour

// fetchTimeout bounds a shared fetch, which outlives the caller that started it.
const fetchTimeout = 2 * time.Minute

// SnapshotSource returns the most recent persisted league snapshot.
type SnapshotSource interface {
	Latest() (league.Snapshot, string, error)
}

// Dataset wraps a result that may have been served from a snapshot.
type Dataset[T any] struct {
	Data T
	// Stale is set when the provider failed and Data came from a snapshot.
	Stale bool
	AsOf  time.Time
}

// Options configures a Service. Zero values fall back to sane defaults.
type Options struct {
	TTL       time.Duration
	Logger    *slog.Logger
	Metrics   *metrics.Recorder
	Snapshots SnapshotSource
}

// Service exposes one cached method per provider dataset.
type Service struct {
	provider  providers.LeagueProvider
	cache     cache.Cache
	ttl       time.Duration
	logger    *slog.Logger
	metrics   *metrics.Recorder
	snapshots SnapshotSource
	group     singleflight.Group
	now       func() time.Time

	// gen counts invalidations; fetches started under an older gen are not stored.
	mu  sync.RWMutex
	gen uint64
}

// entry is the cached encoding of a dataset and the time it was fetched.
type entry struct {
	FetchedAt time.Time       `json:"fetchedAt"`
	Data      json.RawMessage `json:"data"`
}

// NewService constructs a Service backed by provider and store.
func NewService(provider providers.LeagueProvider, store cache.Cache, opts Options) *Service {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if store == nil {
		store = cache.NewMemoryCache(0)
	}
	return &Service{
		provider:  provider,
		cache:     store,
		ttl:       ttl,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		snapshots: opts.Snapshots,
		now:       time.Now,
	}
}

// ProviderName reports the upstream provider for logs and the footer.
func (s *Service) ProviderName() string {
	return providers.NameOf(s.provider, "unknown")
}

// Managers returns league managers, falling back to the latest snapshot when
// the provider fails.
func (s *Service) Managers(ctx context.Context) (Dataset[[]league.Manager], error) {
	managers, at, err := cachedAt(ctx, s, ViewManagers, ViewManagers, s.provider.FetchManagers)
	if err == nil {
		return Dataset[[]league.Manager]{Data: managers, AsOf: at}, nil
	}
	snap, ok := s.fallback(ctx, ViewManagers, err)
	if !ok || len(snap.Managers) == 0 {
		return Dataset[[]league.Manager]{}, err
	}
	return Dataset[[]league.Manager]{Data: snap.Managers, Stale: true, AsOf: snap.FetchedAt}, nil
}

// Teams returns team names keyed by external id, with the same snapshot fallback.
func (s *Service) Teams(ctx context.Context) (Dataset[league.Teams], error) {
	teams, at, err := cachedAt(ctx, s, ViewTeams, ViewTeams, s.provider.FetchTeams)
	if err == nil {
		return Dataset[league.Teams]{Data: teams, AsOf: at}, nil
	}
	snap, ok := s.fallback(ctx, ViewTeams, err)
	if !ok || len(snap.Teams) == 0 {
		return Dataset[league.Teams]{}, err
	}
	return Dataset[league.Teams]{Data: snap.Teams, Stale: true, AsOf: snap.FetchedAt}, nil
}

// Performance returns one manager's gameweek history.
func (s *Service) Performance(ctx context.Context, managerExternalID string) ([]league.GameweekPerformance, error) {
	key := ViewPerformance + ":" + managerExternalID
	return cached(ctx, s, ViewPerformance, key, func(ctx context.Context) ([]league.GameweekPerformance, error) {
		return s.provider.FetchPerformance(ctx, managerExternalID)
	})
}

// TeamPreferences returns each manager's favourite-team links.
func (s *Service) TeamPreferences(ctx context.Context) ([]league.TeamPreference, error) {
	return cached(ctx, s, ViewTeamPreferences, ViewTeamPreferences, s.provider.FetchTeamPreferences)
}

// Transfers returns every recorded transfer.
func (s *Service) Transfers(ctx context.Context) ([]league.Transfer, error) {
	return cached(ctx, s, ViewTransfers, ViewTransfers, s.provider.FetchTransfers)
}

// Players returns the player catalogue keyed by external id.
func (s *Service) Players(ctx context.Context) (league.Players, error) {
	return cached(ctx, s, ViewPlayers, ViewPlayers, s.provider.FetchPlayers)
}

// Picks returns the parsed squad picks and the count of unparseable rows.
func (s *Service) Picks(ctx context.Context) (league.PickSet, error) {
	return cached(ctx, s, ViewPicks, ViewPicks, s.provider.FetchPicks)
}

// PlayerPoints returns per-gameweek points for every player.
func (s *Service) PlayerPoints(ctx context.Context) ([]league.PlayerGameweekPoints, error) {
	return cached(ctx, s, ViewPlayerPoints, ViewPlayerPoints, s.provider.FetchPlayerPoints)
}

// CacheHealth is the cache section of the readiness report.
type CacheHealth struct {
	cache.Stats
	Error string `json:"error,omitempty"`
}

type pinger interface {
	Ping(ctx context.Context) error
}

// CacheHealth pings backends that support it and reports cache activity.
// Stats are skipped when the ping fails.
func (s *Service) CacheHealth(ctx context.Context) CacheHealth {
	if p, ok := s.cache.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return CacheHealth{Error: err.Error()}
		}
	}
	return CacheHealth{Stats: s.cache.Stats()}
}

// Invalidate drops every cached dataset. Fetches already in flight still
// answer their callers but are not written back.
func (s *Service) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if err := s.cache.Flush(ctx); err != nil {
		return fmt.Errorf("flush cache: %w", err)
	}
	logging.Info(logging.FromContext(ctx, s.logger), "league cache invalidated")
	return nil
}

// BuildSnapshot gathers the datasets persisted in a league snapshot. Managers
// and teams are required; the rest are best effort.
func (s *Service) BuildSnapshot(ctx context.Context) (league.Snapshot, error) {
	managers, err := cached(ctx, s, ViewManagers, ViewManagers, s.provider.FetchManagers)
	if err != nil {
		return league.Snapshot{}, fmt.Errorf("managers: %w", err)
	}
	teams, err := cached(ctx, s, ViewTeams, ViewTeams, s.provider.FetchTeams)
	if err != nil {
		return league.Snapshot{}, fmt.Errorf("teams: %w", err)
	}

	snap := league.Snapshot{
		FetchedAt: s.now().UTC(),
		Managers:  managers,
		Teams:     teams,
	}
	logger := logging.FromContext(ctx, s.logger)
	if players, err := s.Players(ctx); err == nil {
		snap.Players = players
	} else {
		logging.Warn(logger, "snapshot without players", slog.String(logging.FieldError, err.Error()))
	}
	if transfers, err := s.Transfers(ctx); err == nil {
		snap.Transfers = transfers
	} else {
		logging.Warn(logger, "snapshot without transfers", slog.String(logging.FieldError, err.Error()))
	}
	if prefs, err := s.TeamPreferences(ctx); err == nil {
		snap.TeamPreferences = prefs
	} else {
		logging.Warn(logger, "snapshot without team preferences", slog.String(logging.FieldError, err.Error()))
	}
	return snap, nil
}

func (s *Service) fallback(ctx context.Context, view string, cause error) (league.Snapshot, bool) {
	logger := logging.FromContext(ctx, s.logger)
	if s.snapshots == nil {
		return league.Snapshot{}, false
	}
	snap, day, err := s.snapshots.Latest()
	if err != nil {
		logging.Debug(logger, "no snapshot fallback available",
			slog.String(logging.FieldView, view),
			slog.String(logging.FieldError, err.Error()),
		)
		return league.Snapshot{}, false
	}
	logging.Warn(logger, "serving snapshot after provider failure",
		slog.String(logging.FieldView, view),
		slog.String(logging.FieldDate, day),
		slog.String(logging.FieldError, cause.Error()),
	)
	return snap, true
}

func cached[T any](ctx context.Context, s *Service, view, key string, fetch func(context.Context) (T, error)) (T, error) {
	v, _, err := cachedAt(ctx, s, view, key, fetch)
	return v, err
}

// cachedAt serves key from the cache, or fetches it once across concurrent
// callers and stores the JSON encoding with its fetch time. Failed fetches are
// not cached. The shared fetch runs detached from any one caller; each caller
// stops waiting when its own ctx ends and decodes its own copy.
func cachedAt[T any](ctx context.Context, s *Service, view, key string, fetch func(context.Context) (T, error)) (T, time.Time, error) {
	var zero T
	logger := logging.FromContext(ctx, s.logger)

	raw, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		v, at, decodeErr := decodeEntry[T](raw)
		if decodeErr == nil {
			s.metrics.RecordCacheLookup(view, true)
			logging.Debug(logger, "cache hit", slog.String(logging.FieldView, view), slog.String(logging.FieldCache, key))
			return v, at, nil
		}
		logging.Warn(logger, "discarding undecodable cache entry",
			slog.String(logging.FieldCache, key),
			slog.String(logging.FieldError, decodeErr.Error()),
		)
		if err := s.cache.Delete(ctx, key); err != nil {
			logging.Warn(logger, "cache delete failed",
				slog.String(logging.FieldCache, key),
				slog.String(logging.FieldError, err.Error()),
			)
		}
	case !errors.Is(err, cache.ErrMiss):
		logging.Warn(logger, "cache read failed",
			slog.String(logging.FieldCache, key),
			slog.String(logging.FieldError, err.Error()),
		)
	}
	s.metrics.RecordCacheLookup(view, false)

	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	ch := s.group.DoChan(fmt.Sprintf("%d:%s", gen, key), func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		val, err := fetch(fctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", view, err)
		}
		payload, err := json.Marshal(entry{FetchedAt: s.now().UTC(), Data: data})
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", view, err)
		}
		s.store(fctx, logger, gen, key, payload)
		return payload, nil
	})

	select {
	case <-ctx.Done():
		return zero, time.Time{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			logging.Warn(logger, "fetch failed",
				slog.String(logging.FieldView, view),
				slog.String(logging.FieldProvider, s.ProviderName()),
				slog.String(logging.FieldError, res.Err.Error()),
			)
			return zero, time.Time{}, res.Err
		}
		v, at, err := decodeEntry[T](res.Val.([]byte))
		if err != nil {
			return zero, time.Time{}, fmt.Errorf("decode %s: %w", view, err)
		}
		return v, at, nil
	}
}

// store writes payload unless an invalidation happened since gen was read.
func (s *Service) store(ctx context.Context, logger *slog.Logger, gen uint64, key string, payload []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.gen != gen {
		logging.Debug(logger, "dropping fetch started before invalidation", slog.String(logging.FieldCache, key))
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		logging.Warn(logger, "cache write failed",
			slog.String(logging.FieldCache, key),
			slog.String(logging.FieldError, err.Error()),
		)
	}
}

func decodeEntry[T any](raw []byte) (T, time.Time, error) {
	var v T
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return v, time.Time{}, err
	}
	if len(e.Data) == 0 {
		return v, time.Time{}, errors.New("cache entry without data")
	}
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return v, time.Time{}, err
	}
	return v, e.FetchedAt, nil
}
