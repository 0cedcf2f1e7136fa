package config

// SnapshotsConfig controls on-disk league snapshots.
type SnapshotsConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Dir           string `yaml:"dir"`
	RetentionDays int    `yaml:"retention_days"`
}

func defaultSnapshots() SnapshotsConfig {
	return SnapshotsConfig{
		Enabled:       defaultSnapshotEnabled,
		Dir:           defaultSnapshotDir,
		RetentionDays: defaultSnapshotRetention,
	}
}

func loadSnapshots(base SnapshotsConfig) SnapshotsConfig {
	return SnapshotsConfig{
		Enabled:       boolEnvOrDefault(envSnapshotEnabled, base.Enabled),
		Dir:           envOrDefault(envSnapshotDir, base.Dir),
		RetentionDays: intEnvOrDefault(envSnapshotRetention, base.RetentionDays),
	}
}
