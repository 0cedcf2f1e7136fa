package teststubs

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

// StubProvider is a test double for providers.LeagueProvider. Every fetch
// returns the configured dataset and Err, counting calls per method.
type StubProvider struct {
	Managers        []league.Manager
	Performance     map[string][]league.GameweekPerformance
	TeamPreferences []league.TeamPreference
	Teams           league.Teams
	Transfers       []league.Transfer
	Players         league.Players
	Picks           league.PickSet
	PlayerPoints    []league.PlayerGameweekPoints
	Err             error
	// Errs overrides Err for a single method, keyed by method name (e.g. "FetchTeams").
	Errs map[string]error
	// Gate, when set, blocks every fetch until it is closed or ctx ends.
	Gate   chan struct{}
	Notify chan struct{}
	Calls  atomic.Int32

	mu      sync.Mutex
	byCalls map[string]int
}

// CallsTo returns how many times the named method was invoked.
func (s *StubProvider) CallsTo(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byCalls[method]
}

func (s *StubProvider) Name() string { return "stub" }

func (s *StubProvider) FetchManagers(ctx context.Context) ([]league.Manager, error) {
	return s.Managers, s.enter(ctx, "FetchManagers")
}

func (s *StubProvider) FetchPerformance(ctx context.Context, managerExternalID string) ([]league.GameweekPerformance, error) {
	return s.Performance[managerExternalID], s.enter(ctx, "FetchPerformance")
}

func (s *StubProvider) FetchTeamPreferences(ctx context.Context) ([]league.TeamPreference, error) {
	return s.TeamPreferences, s.enter(ctx, "FetchTeamPreferences")
}

func (s *StubProvider) FetchTeams(ctx context.Context) (league.Teams, error) {
	return s.Teams, s.enter(ctx, "FetchTeams")
}

func (s *StubProvider) FetchTransfers(ctx context.Context) ([]league.Transfer, error) {
	return s.Transfers, s.enter(ctx, "FetchTransfers")
}

func (s *StubProvider) FetchPlayers(ctx context.Context) (league.Players, error) {
	return s.Players, s.enter(ctx, "FetchPlayers")
}

func (s *StubProvider) FetchPicks(ctx context.Context) (league.PickSet, error) {
	return s.Picks, s.enter(ctx, "FetchPicks")
}

func (s *StubProvider) FetchPlayerPoints(ctx context.Context) ([]league.PlayerGameweekPoints, error) {
	return s.PlayerPoints, s.enter(ctx, "FetchPlayerPoints")
}

func (s *StubProvider) enter(ctx context.Context, method string) error {
	if s.Notify != nil {
		s.mu.Lock()
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
		s.mu.Unlock()
	}
	s.Calls.Add(1)
	s.mu.Lock()
	if s.byCalls == nil {
		s.byCalls = make(map[string]int)
	}
	s.byCalls[method]++
	s.mu.Unlock()

	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err, ok := s.Errs[method]; ok {
		return err
	}
	return s.Err
}

// ErrSnapshotNotFound mirrors the store's missing-snapshot error.
var ErrSnapshotNotFound = fmt.Errorf("snapshot not found: %w", os.ErrNotExist)

// StubSnapshotStore is a test double for the league snapshot reader.
type StubSnapshotStore struct {
	Snapshots map[string]league.Snapshot // keyed by date
	LatestDay string
	LoadErr   error
}

// LoadLeague returns the snapshot for date if present.
func (s *StubSnapshotStore) LoadLeague(date string) (league.Snapshot, error) {
	if s.LoadErr != nil {
		return league.Snapshot{}, s.LoadErr
	}
	snap, ok := s.Snapshots[date]
	if !ok {
		return league.Snapshot{}, ErrSnapshotNotFound
	}
	return snap, nil
}

// Latest returns the snapshot stored under LatestDay.
func (s *StubSnapshotStore) Latest() (league.Snapshot, string, error) {
	snap, err := s.LoadLeague(s.LatestDay)
	if err != nil {
		return league.Snapshot{}, "", err
	}
	return snap, s.LatestDay, nil
}

// StubSnapshotWriter records league snapshots for verification in tests.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written map[string]league.Snapshot // keyed by date
	Err     error
}

// WriteLeagueSnapshot stores the snapshot in memory.
func (w *StubSnapshotWriter) WriteLeagueSnapshot(date string, snapshot league.Snapshot) error {
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Written == nil {
		w.Written = make(map[string]league.Snapshot)
	}
	w.Written[date] = snapshot
	return nil
}

// Count returns the number of snapshots written.
func (w *StubSnapshotWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.Written)
}
