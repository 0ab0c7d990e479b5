package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/jaylaelike/scintpipe/pkg/infra/storage"
)

func TestSnapshotPath(t *testing.T) {
	ts := time.Date(2024, 3, 17, 15, 15, 0, 0, time.UTC)
	gt.Value(t, storage.SnapshotPath(ts)).Equal("2024/03/17/data-20240317-151500.csv")
}

func TestLocalStore_StoreSnapshot(t *testing.T) {
	dir := t.TempDir()
	store := gt.R1(storage.NewLocalStore(dir)).NoError(t)
	defer store.Close()

	ts := time.Date(2024, 3, 17, 15, 15, 0, 0, time.UTC)
	data := []byte("Satellite,Time,S4C,Lat,Lon\nG05,2024-03-17 15:00:00,0.12,13.75,100.5\n")

	path, err := store.StoreSnapshot(context.Background(), data, ts)
	gt.NoError(t, err)
	gt.Value(t, path).Equal(filepath.Join(dir, "2024", "03", "17", "data-20240317-151500.csv"))

	written := gt.R1(os.ReadFile(path)).NoError(t)
	gt.Value(t, written).Equal(data)
}

func TestLocalStore_Prune(t *testing.T) {
	dir := t.TempDir()
	store := gt.R1(storage.NewLocalStore(dir)).NoError(t)
	defer store.Close()

	ctx := context.Background()
	oldPath := gt.R1(store.StoreSnapshot(ctx, []byte("old"), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))).NoError(t)
	newPath := gt.R1(store.StoreSnapshot(ctx, []byte("new"), time.Now())).NoError(t)

	// Snapshot age comes from the file mtime, not the path
	past := time.Now().Add(-48 * time.Hour)
	gt.NoError(t, os.Chtimes(oldPath, past, past))

	removed, err := store.Prune(ctx, 24*time.Hour)
	gt.NoError(t, err)
	gt.Number(t, removed).Equal(1)

	_, err = os.Stat(oldPath)
	gt.True(t, os.IsNotExist(err))
	gt.R1(os.Stat(newPath)).NoError(t)
}
