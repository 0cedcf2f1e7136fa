package snapshots

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/renameio/v2"
)

const manifestVersion = 1

// Manifest tracks which league snapshots are on disk.
type Manifest struct {
	Version     int        `json:"version"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Retention   Retention  `json:"retention"`
	League      LeagueMeta `json:"league"`
}

type Retention struct {
	LeagueDays int `json:"leagueDays"`
}

type LeagueMeta struct {
	Dates         []string  `json:"dates"`
	LastRefreshed time.Time `json:"lastRefreshed"`
	Managers      int       `json:"managers"`
}

func defaultManifest(retentionDays int) Manifest {
	return Manifest{
		Version:   manifestVersion,
		Retention: Retention{LeagueDays: retentionDays},
		League:    LeagueMeta{Dates: []string{}},
	}
}

// ReadManifest loads the manifest under basePath. A missing or corrupt file
// yields the default manifest together with the error.
func ReadManifest(basePath string, retentionDays int) (Manifest, error) {
	data, err := os.ReadFile(ManifestPath(basePath))
	if err != nil {
		return defaultManifest(retentionDays), err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return defaultManifest(retentionDays), err
	}
	if m.League.Dates == nil {
		m.League.Dates = []string{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.Version = manifestVersion
	m.GeneratedAt = now.UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return renameio.WriteFile(ManifestPath(basePath), data, 0o644)
}
