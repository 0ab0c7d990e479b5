package storage

import (
	"fmt"
	"time"
)

// SnapshotPath derives the archive path for a cycle's output file.
// Snapshots are grouped by day so retention pruning can walk whole
// directories: 2024/03/17/data-20240317-151500.csv
func SnapshotPath(ts time.Time) string {
	return fmt.Sprintf("%04d/%02d/%02d/data-%s.csv",
		ts.Year(), ts.Month(), ts.Day(),
		ts.Format("20060102-150405"))
}
