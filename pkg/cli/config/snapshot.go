package config

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/jaylaelike/scintpipe/pkg/domain/interfaces"
	"github.com/jaylaelike/scintpipe/pkg/infra/storage"
)

// Snapshot holds snapshot archive configuration
type Snapshot struct {
	Mode      string
	Dir       string
	Bucket    string
	Retention time.Duration
}

// Flags returns CLI flags for snapshot configuration
func (c *Snapshot) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "snapshot-mode",
			Usage:       "Snapshot archive backend: local, gcs, or empty to disable",
			Destination: &c.Mode,
			Sources:     cli.EnvVars("SCINTPIPE_SNAPSHOT_MODE"),
		},
		&cli.StringFlag{
			Name:        "snapshot-dir",
			Usage:       "Base directory for local snapshots",
			Value:       "./snapshots",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("SCINTPIPE_SNAPSHOT_DIR"),
		},
		&cli.StringFlag{
			Name:        "snapshot-bucket",
			Usage:       "GCS bucket for gcs snapshot mode",
			Destination: &c.Bucket,
			Sources:     cli.EnvVars("SCINTPIPE_SNAPSHOT_BUCKET"),
		},
		&cli.DurationFlag{
			Name:        "snapshot-retention",
			Usage:       "Snapshots older than this are pruned",
			Value:       30 * 24 * time.Hour,
			Destination: &c.Retention,
			Sources:     cli.EnvVars("SCINTPIPE_SNAPSHOT_RETENTION"),
		},
	}
}

// NewStore builds the snapshot store. A nil store means archiving is
// disabled.
func (c *Snapshot) NewStore(ctx context.Context) (interfaces.SnapshotStore, error) {
	return storage.NewSnapshotStore(ctx, storage.Mode(c.Mode), c.Dir, c.Bucket)
}
