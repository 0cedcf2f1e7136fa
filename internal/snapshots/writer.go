package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/renameio/v2"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

const defaultRetentionDays = 14

// Writer persists league snapshots and the manifest, pruning past the
// retention window.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
	mu            sync.Mutex
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteLeagueSnapshot writes the league snapshot for date (YYYY-MM-DD) and
// prunes old snapshots. Managers are ordered by external id so unchanged data
// produces an identical file.
func (w *Writer) WriteLeagueSnapshot(date string, snapshot league.Snapshot) error {
	if w == nil {
		return errors.New("snapshot writer not configured")
	}
	if date == "" {
		return errors.New("date required")
	}
	if _, err := ParseDate(date); err != nil {
		return fmt.Errorf("invalid snapshot date %q: %w", date, err)
	}

	managers := append([]league.Manager(nil), snapshot.Managers...)
	sort.SliceStable(managers, func(i, j int) bool {
		return managers[i].ExternalID < managers[j].ExternalID
	})
	snapshot.Managers = managers

	w.mu.Lock()
	defer w.mu.Unlock()

	target := LeagueSnapshotPath(w.basePath, date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err != nil || !bytes.Equal(existing, data) {
		if err := renameio.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("write snapshot %s: %w", date, err)
		}
	}
	return w.updateManifest(date, len(snapshot.Managers))
}

func (w *Writer) updateManifest(date string, managers int) error {
	m, _ := ReadManifest(w.basePath, w.retentionDays)
	now := w.now().UTC()

	dates, err := listDates(w.basePath)
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}

	m.League.Dates = w.pruneOldSnapshots(dates, now)
	m.League.LastRefreshed = now
	m.League.Managers = managers
	m.Retention.LeagueDays = w.retentionDays
	return writeManifest(w.basePath, m, now)
}

func (w *Writer) pruneOldSnapshots(dates []string, now time.Time) []string {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -w.retentionDays)
	keep := make([]string, 0, len(dates))
	for _, d := range dates {
		parsed, err := ParseDate(d)
		if err == nil && parsed.Before(cutoff) {
			_ = os.Remove(LeagueSnapshotPath(w.basePath, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

// listDates returns the snapshot dates present on disk, sorted ascending.
// Files that are not named after a date are ignored.
func listDates(basePath string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(basePath, leagueDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		base := strings.TrimSuffix(name, ".json")
		if _, err := ParseDate(base); err != nil {
			continue
		}
		dates = append(dates, base)
	}
	sort.Strings(dates)
	return dates, nil
}
