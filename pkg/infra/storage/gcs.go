package storage

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

// GCSStore archives snapshots in a Google Cloud Storage bucket
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore creates a GCS-backed snapshot store. Credentials come
// from the ambient application default credentials.
func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GCS client")
	}
	return &GCSStore{
		client: client,
		bucket: bucket,
	}, nil
}

// StoreSnapshot uploads data under the timestamped snapshot path
func (s *GCSStore) StoreSnapshot(ctx context.Context, data []byte, ts time.Time) (string, error) {
	objectPath := SnapshotPath(ts)

	writer := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	writer.ContentType = "text/csv"
	writer.Metadata = map[string]string{
		"generated-at": ts.Format(time.RFC3339),
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return "", goerr.Wrap(err, "failed to write snapshot to GCS", goerr.V("object", objectPath))
	}
	if err := writer.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize GCS snapshot", goerr.V("object", objectPath))
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, objectPath), nil
}

// Prune deletes snapshot objects older than the retention window
func (s *GCSStore) Prune(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	removed := 0

	bucket := s.client.Bucket(s.bucket)
	it := bucket.Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return removed, goerr.Wrap(err, "failed to list snapshots", goerr.V("bucket", s.bucket))
		}
		if attrs.Created.Before(cutoff) {
			if err := bucket.Object(attrs.Name).Delete(ctx); err != nil {
				return removed, goerr.Wrap(err, "failed to delete old snapshot", goerr.V("object", attrs.Name))
			}
			removed++
		}
	}
	return removed, nil
}

// Close closes the underlying GCS client
func (s *GCSStore) Close() error {
	return s.client.Close()
}
