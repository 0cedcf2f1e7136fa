package snapshots

import (
	"fmt"
	"path/filepath"
	"time"
)

// DateLayout is the canonical snapshot date (YYYY-MM-DD).
const DateLayout = "2006-01-02"

const (
	leagueDir    = "league"
	manifestFile = "manifest.json"
)

// ParseDate parses a YYYY-MM-DD snapshot date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats t as a snapshot date in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// LeagueSnapshotPath builds the path to the league snapshot for date.
func LeagueSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, leagueDir, fmt.Sprintf("%s.json", date))
}

// ManifestPath is the location of the manifest under basePath.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}
