package snapshots

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFSStoreLoadsWrittenSnapshot(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	w := fixedWriter(t, 10, now)
	snap := sampleSnapshot(now)
	writeSnapshot(t, w, "2025-03-10", snap)

	got, err := NewFSStore(w.BasePath()).LoadLeague("2025-03-10")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// The writer orders managers by id.
	snap.Managers[0], snap.Managers[1] = snap.Managers[1], snap.Managers[0]
	if diff := cmp.Diff(snap, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestFSStoreLoadMissingWrapsNotExist(t *testing.T) {
	_, err := NewFSStore(t.TempDir()).LoadLeague("2025-01-01")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
	if _, err := NewFSStore(t.TempDir()).LoadLeague(""); err == nil {
		t.Fatalf("expected error for empty date")
	}
	var nilStore *FSStore
	if _, err := nilStore.LoadLeague("2025-01-01"); err == nil {
		t.Fatalf("expected error for nil store")
	}
}

func TestFSStoreLatestPicksNewestDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	w := fixedWriter(t, 30, now)
	for _, d := range []string{"2025-03-08", "2025-03-10", "2025-03-09"} {
		snap := sampleSnapshot(now)
		snap.Teams["day"] = d
		writeSnapshot(t, w, d, snap)
	}

	snap, date, err := NewFSStore(w.BasePath()).Latest()
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if date != "2025-03-10" || snap.Teams["day"] != "2025-03-10" {
		t.Fatalf("expected newest snapshot, got %s (%v)", date, snap.Teams)
	}
}

func TestFSStoreLatestWithoutManifestUsesDirectory(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	w := fixedWriter(t, 30, now)
	writeSnapshot(t, w, "2025-03-09", sampleSnapshot(now))
	if err := os.Remove(ManifestPath(w.BasePath())); err != nil {
		t.Fatalf("remove manifest: %v", err)
	}
	// Stray files are ignored.
	if err := os.WriteFile(filepath.Join(w.BasePath(), "league", "notes.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write stray file: %v", err)
	}

	_, date, err := NewFSStore(w.BasePath()).Latest()
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if date != "2025-03-09" {
		t.Fatalf("expected 2025-03-09, got %s", date)
	}
}

func TestFSStoreLatestSkipsCorruptNewest(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	w := fixedWriter(t, 30, now)
	writeSnapshot(t, w, "2025-03-09", sampleSnapshot(now))
	writeSnapshot(t, w, "2025-03-10", sampleSnapshot(now))
	if err := os.WriteFile(LeagueSnapshotPath(w.BasePath(), "2025-03-10"), []byte("{"), 0o644); err != nil {
		t.Fatalf("corrupt snapshot: %v", err)
	}

	_, date, err := NewFSStore(w.BasePath()).Latest()
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if date != "2025-03-09" {
		t.Fatalf("expected fallback to 2025-03-09, got %s", date)
	}
}

func TestFSStoreLatestEmpty(t *testing.T) {
	_, _, err := NewFSStore(t.TempDir()).Latest()
	if !errors.Is(err, ErrNoSnapshots) {
		t.Fatalf("expected ErrNoSnapshots, got %v", err)
	}
}

func TestDateHelpers(t *testing.T) {
	at := time.Date(2025, 3, 10, 23, 30, 0, 0, time.FixedZone("X", -2*3600))
	if got := FormatDate(at); got != "2025-03-11" {
		t.Fatalf("expected UTC date 2025-03-11, got %s", got)
	}
	if _, err := ParseDate("2025-13-01"); err == nil {
		t.Fatalf("expected invalid month error")
	}
}
