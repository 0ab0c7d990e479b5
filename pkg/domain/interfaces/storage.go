package interfaces

import (
	"context"
	"time"
)

// SnapshotStore archives a copy of each cycle's output file under a
// timestamped path. Archiving is best effort and never fails a cycle.
type SnapshotStore interface {
	// StoreSnapshot writes data under a path derived from ts and
	// returns that path
	StoreSnapshot(ctx context.Context, data []byte, ts time.Time) (string, error)

	// Prune removes snapshots older than the retention window and
	// returns the number of removed snapshots
	Prune(ctx context.Context, olderThan time.Duration) (int, error)

	// Close releases backend resources
	Close() error
}
