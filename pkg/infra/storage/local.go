package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// LocalStore archives snapshots under a directory on local disk
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a local snapshot store rooted at baseDir
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create snapshot directory", goerr.V("dir", baseDir))
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// StoreSnapshot writes data under the timestamped snapshot path
func (s *LocalStore) StoreSnapshot(ctx context.Context, data []byte, ts time.Time) (string, error) {
	path := filepath.Join(s.baseDir, SnapshotPath(ts))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create snapshot directory", goerr.V("path", path))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", goerr.Wrap(err, "failed to write snapshot", goerr.V("path", path))
	}
	return path, nil
}

// Prune removes snapshot files older than the retention window.
// Emptied day directories are left in place.
func (s *LocalStore) Prune(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	removed := 0

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".csv") {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err == nil {
				removed++
			}
		}
		return nil
	})
	if err != nil {
		return removed, goerr.Wrap(err, "failed to walk snapshot directory", goerr.V("dir", s.baseDir))
	}
	return removed, nil
}

// Close is a no-op for local storage
func (s *LocalStore) Close() error {
	return nil
}
