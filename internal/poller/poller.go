// Package poller keeps the league cache warm and writes a daily snapshot.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	appleague "github.com/preston-bernstein/fpl-dashboard/internal/app/league"
	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
	"github.com/preston-bernstein/fpl-dashboard/internal/logging"
	"github.com/preston-bernstein/fpl-dashboard/internal/metrics"
	"github.com/preston-bernstein/fpl-dashboard/internal/snapshots"
)

const (
	defaultInterval = 15 * time.Minute
	readyFailures   = 3
)

// ErrStale is reported when managers could only be served from a snapshot.
var ErrStale = errors.New("managers served from snapshot")

// LeagueSource is the cached league data the poller warms.
type LeagueSource interface {
	Managers(ctx context.Context) (appleague.Dataset[[]league.Manager], error)
	Teams(ctx context.Context) (appleague.Dataset[league.Teams], error)
	Players(ctx context.Context) (league.Players, error)
	Transfers(ctx context.Context) ([]league.Transfer, error)
	TeamPreferences(ctx context.Context) ([]league.TeamPreference, error)
	BuildSnapshot(ctx context.Context) (league.Snapshot, error)
}

// SnapshotWriter persists league snapshots to disk.
type SnapshotWriter interface {
	WriteLeagueSnapshot(date string, snapshot league.Snapshot) error
}

// Poller warms the league cache on an interval and writes today's snapshot.
type Poller struct {
	source   LeagueSource
	writer   SnapshotWriter
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	cancel   context.CancelFunc
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	// cycleMu serializes scheduled cycles with admin refreshes.
	cycleMu sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
	LastSnapshot        string    `json:"lastSnapshot,omitempty"`
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailures
}

// Cycle summarizes one warm-up pass.
type Cycle struct {
	Date     string        `json:"date"`
	Managers int           `json:"managers"`
	Snapshot bool          `json:"snapshot"`
	Duration time.Duration `json:"-"`
}

// New constructs a Poller. A nil writer disables snapshots.
func New(source LeagueSource, writer SnapshotWriter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		source:   source,
		writer:   writer,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// Start warms the cache immediately, then on every tick until ctx is
// cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.ticker = time.NewTicker(p.interval)
	p.startMu.Unlock()

	go func() {
		defer close(p.exited)
		defer cancel()
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		p.fetchOnce(loopCtx)

		for {
			select {
			case <-loopCtx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(loopCtx)
			}
		}
	}()
}

// Stop halts the polling loop, cancelling an in-flight cycle, and waits for
// it to exit or ctx to end.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
	})

	p.startMu.Lock()
	started := p.started
	cancel := p.cancel
	p.startMu.Unlock()
	if !started {
		return nil
	}
	if cancel != nil {
		cancel()
	}
	select {
	case <-p.exited:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("poller stop: %w", ctx.Err())
	}
}

// Refresh runs one warm-up cycle synchronously and reports what it did.
func (p *Poller) Refresh(ctx context.Context) (Cycle, error) {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	start := time.Now()
	p.recordAttempt(start)
	cycle, err := p.warm(ctx)
	cycle.Duration = time.Since(start)
	p.metrics.RecordPollerCycle(cycle.Duration, err)
	if err != nil {
		logging.Error(p.logger, "poller warm-up failed", err, slog.Int64(logging.FieldDurationMS, cycle.Duration.Milliseconds()))
		p.recordFailure(err, start)
		return cycle, err
	}

	p.recordSuccess(start, cycle)
	logging.Info(p.logger, "poller refreshed league",
		slog.Int(logging.FieldCount, cycle.Managers),
		slog.String(logging.FieldDate, cycle.Date),
		slog.Int64(logging.FieldDurationMS, cycle.Duration.Milliseconds()),
	)
	return cycle, nil
}

func (p *Poller) fetchOnce(ctx context.Context) {
	_, _ = p.Refresh(ctx)
}

// warm fetches every league dataset concurrently, then persists the day's
// snapshot. A snapshot write failure is logged but does not fail the cycle.
func (p *Poller) warm(ctx context.Context) (Cycle, error) {
	cycle := Cycle{Date: snapshots.FormatDate(p.now())}

	var g errgroup.Group
	g.Go(func() error {
		ds, err := p.source.Managers(ctx)
		if err != nil {
			return fmt.Errorf("warm managers: %w", err)
		}
		if ds.Stale {
			return ErrStale
		}
		cycle.Managers = len(ds.Data)
		return nil
	})
	g.Go(func() error {
		if _, err := p.source.Teams(ctx); err != nil {
			return fmt.Errorf("warm teams: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := p.source.Players(ctx); err != nil {
			return fmt.Errorf("warm players: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := p.source.Transfers(ctx); err != nil {
			return fmt.Errorf("warm transfers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := p.source.TeamPreferences(ctx); err != nil {
			return fmt.Errorf("warm team preferences: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return cycle, err
	}

	if p.writer == nil {
		return cycle, nil
	}
	snap, err := p.source.BuildSnapshot(ctx)
	if err == nil {
		err = p.writer.WriteLeagueSnapshot(cycle.Date, snap)
	}
	p.metrics.RecordSnapshotWrite(err)
	if err != nil {
		logging.Error(p.logger, "poller snapshot write failed", err, slog.String(logging.FieldDate, cycle.Date))
		return cycle, nil
	}
	cycle.Snapshot = true
	return cycle, nil
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, cycle Cycle) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	if cycle.Snapshot {
		p.status.LastSnapshot = cycle.Date
	}
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
