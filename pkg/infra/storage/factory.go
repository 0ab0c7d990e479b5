package storage

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/jaylaelike/scintpipe/pkg/domain/interfaces"
)

// Mode selects the snapshot storage backend
type Mode string

const (
	ModeDisabled Mode = ""      // snapshot archiving off
	ModeLocal    Mode = "local" // local directory
	ModeGCS      Mode = "gcs"   // Google Cloud Storage bucket
)

// NewSnapshotStore creates a snapshot store for the given mode.
// ModeDisabled returns nil: callers treat a nil store as archiving off.
func NewSnapshotStore(ctx context.Context, mode Mode, localDir, gcsBucket string) (interfaces.SnapshotStore, error) {
	switch mode {
	case ModeDisabled:
		return nil, nil
	case ModeLocal:
		store, err := NewLocalStore(localDir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize local snapshot store")
		}
		return store, nil
	case ModeGCS:
		if gcsBucket == "" {
			return nil, goerr.New("GCS bucket is required for gcs snapshot mode")
		}
		store, err := NewGCSStore(ctx, gcsBucket)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize GCS snapshot store")
		}
		return store, nil
	default:
		return nil, goerr.New("unsupported snapshot mode", goerr.V("mode", string(mode)))
	}
}
