package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

// ErrNoSnapshots is returned by Latest when nothing has been written yet.
var ErrNoSnapshots = errors.New("no league snapshots")

// Store defines how snapshots are loaded.
type Store interface {
	LoadLeague(date string) (league.Snapshot, error)
	Latest() (league.Snapshot, string, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadLeague reads the snapshot for date (YYYY-MM-DD) from
// {basePath}/league/{date}.json. Missing files wrap os.ErrNotExist.
func (s *FSStore) LoadLeague(date string) (league.Snapshot, error) {
	if s == nil {
		return league.Snapshot{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return league.Snapshot{}, errors.New("snapshot date required")
	}
	var snap league.Snapshot
	if err := decodeFile(LeagueSnapshotPath(s.basePath, date), &snap); err != nil {
		return league.Snapshot{}, fmt.Errorf("load snapshot %s: %w", date, err)
	}
	return snap, nil
}

// Latest returns the newest readable snapshot and its date. The manifest is
// consulted first; the directory listing covers a missing manifest.
func (s *FSStore) Latest() (league.Snapshot, string, error) {
	if s == nil {
		return league.Snapshot{}, "", errors.New("snapshot store not configured")
	}
	dates, err := s.dates()
	if err != nil {
		return league.Snapshot{}, "", err
	}
	var lastErr error
	for i := len(dates) - 1; i >= 0; i-- {
		snap, err := s.LoadLeague(dates[i])
		if err == nil {
			return snap, dates[i], nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return league.Snapshot{}, "", lastErr
	}
	return league.Snapshot{}, "", ErrNoSnapshots
}

func (s *FSStore) dates() ([]string, error) {
	if m, err := ReadManifest(s.basePath, 0); err == nil && len(m.League.Dates) > 0 {
		return m.League.Dates, nil
	}
	return listDates(s.basePath)
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
