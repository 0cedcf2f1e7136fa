package server

import (
	appleague "github.com/preston-bernstein/fpl-dashboard/internal/app/league"
	"github.com/preston-bernstein/fpl-dashboard/internal/config"
	"github.com/preston-bernstein/fpl-dashboard/internal/http/handlers"
	"github.com/preston-bernstein/fpl-dashboard/internal/poller"
	"github.com/preston-bernstein/fpl-dashboard/internal/snapshots"
)

type snapshotComponents struct {
	store  *snapshots.FSStore
	writer *snapshots.Writer
}

// buildSnapshots returns empty components when snapshots are disabled.
func buildSnapshots(cfg config.SnapshotsConfig) snapshotComponents {
	if !cfg.Enabled || cfg.Dir == "" {
		return snapshotComponents{}
	}
	return snapshotComponents{
		store:  snapshots.NewFSStore(cfg.Dir),
		writer: snapshots.NewWriter(cfg.Dir, cfg.RetentionDays),
	}
}

// The accessors return untyped nils so consumers' nil checks hold.

func (c snapshotComponents) source() appleague.SnapshotSource {
	if c.store == nil {
		return nil
	}
	return c.store
}

func (c snapshotComponents) reader() handlers.SnapshotReader {
	if c.store == nil {
		return nil
	}
	return c.store
}

func (c snapshotComponents) snapshotWriter() poller.SnapshotWriter {
	if c.writer == nil {
		return nil
	}
	return c.writer
}
