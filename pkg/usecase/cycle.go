package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/jaylaelike/scintpipe/pkg/domain/interfaces"
	"github.com/jaylaelike/scintpipe/pkg/domain/model"
	"github.com/jaylaelike/scintpipe/pkg/utils/async"
)

type cycleUseCase struct {
	inputs     model.InputFileSet
	outputPath string
	repoPath   string
	analysis   interfaces.AnalysisClient
	uploader   interfaces.Uploader
	snapshots  interfaces.SnapshotStore
	retention  time.Duration
}

// Option is a functional option for cycle configuration
type Option func(*cycleUseCase)

// WithSnapshotStore enables best-effort archiving of each cycle's
// output file. Snapshots older than retention are pruned in the
// background after each archive; zero retention disables pruning.
func WithSnapshotStore(store interfaces.SnapshotStore, retention time.Duration) Option {
	return func(uc *cycleUseCase) {
		uc.snapshots = store
		uc.retention = retention
	}
}

// NewCycle creates the fetch-process-upload cycle use case
func NewCycle(
	inputs model.InputFileSet,
	outputPath string,
	repoPath string,
	analysis interfaces.AnalysisClient,
	uploader interfaces.Uploader,
	opts ...Option,
) interfaces.CycleUseCase {
	uc := &cycleUseCase{
		inputs:     inputs,
		outputPath: outputPath,
		repoPath:   repoPath,
		analysis:   analysis,
		uploader:   uploader,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// RunCycle executes one full cycle. Each step failure aborts the
// cycle; the caller decides when the next attempt happens.
func (uc *cycleUseCase) RunCycle(ctx context.Context) (*model.CycleResult, error) {
	logger := ctxlog.From(ctx)

	result := &model.CycleResult{
		ID:         uuid.New().String(),
		StartedAt:  time.Now(),
		OutputPath: uc.outputPath,
	}

	if missing := uc.inputs.Missing(); len(missing) > 0 {
		return nil, goerr.New("missing input files", goerr.V("files", missing))
	}
	logger.Debug("All input files present",
		"cycle_id", result.ID,
		"s4c", uc.inputs.S4CPath,
		"lat", uc.inputs.LatPath,
		"lon", uc.inputs.LonPath,
	)

	resp, err := uc.analysis.Analyze(ctx, uc.inputs)
	if err != nil {
		return nil, goerr.Wrap(err, "analysis request failed")
	}

	records, err := resp.Records()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract records from analysis response")
	}
	result.RecordCount = len(records)

	if meta := resp.TransformedDataResult.Metadata; meta != nil {
		logger.Info("Extracted records from analysis response",
			"cycle_id", result.ID,
			"records", len(records),
			"satellites", meta.UniqueSatellites,
		)
	} else {
		logger.Info("Extracted records from analysis response",
			"cycle_id", result.ID,
			"records", len(records),
		)
	}

	data, err := renderCSV(records)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render output CSV")
	}
	if err := os.WriteFile(uc.outputPath, data, 0644); err != nil {
		return nil, goerr.Wrap(err, "failed to write output file", goerr.V("path", uc.outputPath))
	}
	logger.Info("Wrote output file",
		"cycle_id", result.ID,
		"path", uc.outputPath,
		"size_bytes", len(data),
	)

	htmlURL, err := uc.uploader.UploadFile(ctx, uc.repoPath, data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload output file")
	}
	result.CommitURL = htmlURL
	logger.Info("Uploaded output file",
		"cycle_id", result.ID,
		"repo_path", uc.repoPath,
		"url", htmlURL,
	)

	// Snapshot archiving never fails the cycle
	if uc.snapshots != nil {
		if path, err := uc.snapshots.StoreSnapshot(ctx, data, result.StartedAt); err != nil {
			logger.Warn("Failed to archive snapshot", "cycle_id", result.ID, "error", err)
		} else {
			result.SnapshotPath = path
		}

		if uc.retention > 0 {
			store, retention := uc.snapshots, uc.retention
			async.Dispatch(ctx, func(ctx context.Context) error {
				removed, err := store.Prune(ctx, retention)
				if err != nil {
					return goerr.Wrap(err, "failed to prune old snapshots")
				}
				if removed > 0 {
					ctxlog.From(ctx).Info("Pruned old snapshots", "removed", removed)
				}
				return nil
			})
		}
	}

	result.Duration = time.Since(result.StartedAt)
	return result, nil
}

// renderCSV serializes records into the fixed-column output document.
// The whole file is rendered in memory so a failed cycle can never
// leave a half-written output behind.
func renderCSV(records []model.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(model.CSVHeader); err != nil {
		return nil, err
	}
	for i := range records {
		if err := w.Write(records[i].CSVRow()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
