package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/jaylaelike/scintpipe/pkg/domain/model"
	"github.com/jaylaelike/scintpipe/pkg/usecase"
)

type mockAnalysis struct {
	analyzeFunc func(ctx context.Context, inputs model.InputFileSet) (*model.AnalysisResponse, error)
	calls       int
}

func (m *mockAnalysis) Analyze(ctx context.Context, inputs model.InputFileSet) (*model.AnalysisResponse, error) {
	m.calls++
	return m.analyzeFunc(ctx, inputs)
}

func (m *mockAnalysis) Ping(ctx context.Context) error { return nil }

type mockUploader struct {
	uploadFunc func(ctx context.Context, repoPath string, content []byte) (string, error)
	calls      int
	lastPath   string
	lastData   []byte
}

func (m *mockUploader) UploadFile(ctx context.Context, repoPath string, content []byte) (string, error) {
	m.calls++
	m.lastPath = repoPath
	m.lastData = content
	return m.uploadFunc(ctx, repoPath, content)
}

func (m *mockUploader) CheckAccess(ctx context.Context) error { return nil }

type mockSnapshots struct {
	storeFunc func(ctx context.Context, data []byte, ts time.Time) (string, error)
	pruned    chan time.Duration
}

func (m *mockSnapshots) StoreSnapshot(ctx context.Context, data []byte, ts time.Time) (string, error) {
	return m.storeFunc(ctx, data, ts)
}

func (m *mockSnapshots) Prune(ctx context.Context, olderThan time.Duration) (int, error) {
	if m.pruned != nil {
		m.pruned <- olderThan
	}
	return 0, nil
}

func (m *mockSnapshots) Close() error { return nil }

func writeInputs(t *testing.T, dir string) model.InputFileSet {
	t.Helper()
	inputs := model.NewInputFileSet(dir,
		"SN560_S4C_last15min.csv",
		"SN560_Lat_last15min.csv",
		"SN560_Lon_last15min.csv",
	)
	for _, path := range []string{inputs.S4CPath, inputs.LatPath, inputs.LonPath} {
		gt.NoError(t, os.WriteFile(path, []byte("GPS Time (UTC),G05\n2024-03-17 15:00:00,0.12\n"), 0644))
	}
	return inputs
}

func successResponse(records ...model.Record) *model.AnalysisResponse {
	return &model.AnalysisResponse{
		AnalysisComplete: true,
		TransformedDataResult: &model.TransformedDataResult{
			Status: model.StatusSuccess,
			Data:   &model.TransformedData{Records: records},
		},
	}
}

func TestRunCycle_Success(t *testing.T) {
	dir := t.TempDir()
	inputs := writeInputs(t, dir)
	outputPath := filepath.Join(dir, "data.csv")

	analysis := &mockAnalysis{
		analyzeFunc: func(ctx context.Context, got model.InputFileSet) (*model.AnalysisResponse, error) {
			gt.Value(t, got).Equal(inputs)
			return successResponse(
				model.Record{Satellite: "G05", Time: "2024-03-17 15:00:00", S4C: 0.12, Lat: 13.75, Lon: 100.5},
				model.Record{Satellite: "G13", Time: "2024-03-17 15:00:00", S4C: 0.34, Lat: 13.76, Lon: 100.49},
			), nil
		},
	}
	uploader := &mockUploader{
		uploadFunc: func(ctx context.Context, repoPath string, content []byte) (string, error) {
			return "https://github.com/jaylaelike/s4c-trajectory-project-app/blob/main/data.csv", nil
		},
	}

	uc := usecase.NewCycle(inputs, outputPath, "data.csv", analysis, uploader)
	result, err := uc.RunCycle(context.Background())
	gt.NoError(t, err)
	gt.NotNil(t, result)
	gt.Number(t, result.RecordCount).Equal(2)
	gt.Value(t, result.OutputPath).Equal(outputPath)
	gt.String(t, result.CommitURL).Contains("github.com")
	gt.String(t, result.ID).NotEqual("")

	written, err := os.ReadFile(outputPath)
	gt.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(written), "\n"), "\n")
	gt.Number(t, len(lines)).Equal(3)
	gt.Value(t, lines[0]).Equal("Satellite,Time,S4C,Lat,Lon")
	gt.Value(t, lines[1]).Equal("G05,2024-03-17 15:00:00,0.12,13.75,100.5")

	gt.Number(t, uploader.calls).Equal(1)
	gt.Value(t, uploader.lastPath).Equal("data.csv")
	gt.Value(t, uploader.lastData).Equal(written)
}

func TestRunCycle_MissingInput(t *testing.T) {
	dir := t.TempDir()
	inputs := model.NewInputFileSet(dir, "s4c.csv", "lat.csv", "lon.csv")
	outputPath := filepath.Join(dir, "data.csv")
	gt.NoError(t, os.WriteFile(outputPath, []byte("previous cycle output"), 0644))

	analysis := &mockAnalysis{
		analyzeFunc: func(ctx context.Context, inputs model.InputFileSet) (*model.AnalysisResponse, error) {
			return successResponse(), nil
		},
	}
	uploader := &mockUploader{
		uploadFunc: func(ctx context.Context, repoPath string, content []byte) (string, error) {
			return "", nil
		},
	}

	uc := usecase.NewCycle(inputs, outputPath, "data.csv", analysis, uploader)
	_, err := uc.RunCycle(context.Background())
	gt.Error(t, err)

	// The failed cycle must not touch the API or the previous output
	gt.Number(t, analysis.calls).Equal(0)
	gt.Number(t, uploader.calls).Equal(0)
	data := gt.R1(os.ReadFile(outputPath)).NoError(t)
	gt.Value(t, string(data)).Equal("previous cycle output")
}

func TestRunCycle_AnalysisError(t *testing.T) {
	dir := t.TempDir()
	inputs := writeInputs(t, dir)
	outputPath := filepath.Join(dir, "data.csv")
	gt.NoError(t, os.WriteFile(outputPath, []byte("previous cycle output"), 0644))

	analysis := &mockAnalysis{
		analyzeFunc: func(ctx context.Context, inputs model.InputFileSet) (*model.AnalysisResponse, error) {
			return nil, goerr.New("connection refused")
		},
	}
	uploader := &mockUploader{
		uploadFunc: func(ctx context.Context, repoPath string, content []byte) (string, error) {
			return "", nil
		},
	}

	uc := usecase.NewCycle(inputs, outputPath, "data.csv", analysis, uploader)
	_, err := uc.RunCycle(context.Background())
	gt.Error(t, err)
	gt.Number(t, uploader.calls).Equal(0)

	data := gt.R1(os.ReadFile(outputPath)).NoError(t)
	gt.Value(t, string(data)).Equal("previous cycle output")
}

func TestRunCycle_EmptyRecords(t *testing.T) {
	dir := t.TempDir()
	inputs := writeInputs(t, dir)
	outputPath := filepath.Join(dir, "data.csv")

	analysis := &mockAnalysis{
		analyzeFunc: func(ctx context.Context, inputs model.InputFileSet) (*model.AnalysisResponse, error) {
			return successResponse(), nil
		},
	}
	uploader := &mockUploader{
		uploadFunc: func(ctx context.Context, repoPath string, content []byte) (string, error) {
			return "", nil
		},
	}

	uc := usecase.NewCycle(inputs, outputPath, "data.csv", analysis, uploader)
	_, err := uc.RunCycle(context.Background())
	gt.Error(t, err)
	gt.Number(t, uploader.calls).Equal(0)
	_, statErr := os.Stat(outputPath)
	gt.True(t, os.IsNotExist(statErr))
}

func TestRunCycle_UploadError(t *testing.T) {
	dir := t.TempDir()
	inputs := writeInputs(t, dir)
	outputPath := filepath.Join(dir, "data.csv")

	analysis := &mockAnalysis{
		analyzeFunc: func(ctx context.Context, inputs model.InputFileSet) (*model.AnalysisResponse, error) {
			return successResponse(
				model.Record{Satellite: "G05", Time: "2024-03-17 15:00:00", S4C: 0.12, Lat: 13.75, Lon: 100.5},
			), nil
		},
	}
	uploader := &mockUploader{
		uploadFunc: func(ctx context.Context, repoPath string, content []byte) (string, error) {
			return "", goerr.New("401 Unauthorized")
		},
	}

	uc := usecase.NewCycle(inputs, outputPath, "data.csv", analysis, uploader)
	_, err := uc.RunCycle(context.Background())
	gt.Error(t, err)

	// The local output is already written when the upload fails
	data := gt.R1(os.ReadFile(outputPath)).NoError(t)
	gt.String(t, string(data)).Contains("G05")
}

func TestRunCycle_OverwritesOutput(t *testing.T) {
	dir := t.TempDir()
	inputs := writeInputs(t, dir)
	outputPath := filepath.Join(dir, "data.csv")

	records := []model.Record{
		{Satellite: "G05", Time: "2024-03-17 15:00:00", S4C: 0.12, Lat: 13.75, Lon: 100.5},
		{Satellite: "G13", Time: "2024-03-17 15:00:00", S4C: 0.34, Lat: 13.76, Lon: 100.49},
	}
	analysis := &mockAnalysis{
		analyzeFunc: func(ctx context.Context, inputs model.InputFileSet) (*model.AnalysisResponse, error) {
			return successResponse(records...), nil
		},
	}
	uploader := &mockUploader{
		uploadFunc: func(ctx context.Context, repoPath string, content []byte) (string, error) {
			return "", nil
		},
	}

	uc := usecase.NewCycle(inputs, outputPath, "data.csv", analysis, uploader)
	gt.R1(uc.RunCycle(context.Background())).NoError(t)

	// Second cycle with fewer records must replace, not append
	records = records[:1]
	result := gt.R1(uc.RunCycle(context.Background())).NoError(t)
	gt.Number(t, result.RecordCount).Equal(1)

	data := gt.R1(os.ReadFile(outputPath)).NoError(t)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	gt.Number(t, len(lines)).Equal(2)
}

func TestRunCycle_Snapshot(t *testing.T) {
	dir := t.TempDir()
	inputs := writeInputs(t, dir)
	outputPath := filepath.Join(dir, "data.csv")

	analysis := &mockAnalysis{
		analyzeFunc: func(ctx context.Context, inputs model.InputFileSet) (*model.AnalysisResponse, error) {
			return successResponse(
				model.Record{Satellite: "G05", Time: "2024-03-17 15:00:00", S4C: 0.12, Lat: 13.75, Lon: 100.5},
			), nil
		},
	}
	uploader := &mockUploader{
		uploadFunc: func(ctx context.Context, repoPath string, content []byte) (string, error) {
			return "", nil
		},
	}

	t.Run("archives output and prunes", func(t *testing.T) {
		pruned := make(chan time.Duration, 1)
		snapshots := &mockSnapshots{
			storeFunc: func(ctx context.Context, data []byte, ts time.Time) (string, error) {
				gt.String(t, string(data)).Contains("G05")
				return "snapshots/2024/03/17/data-20240317-150000.csv", nil
			},
			pruned: pruned,
		}

		uc := usecase.NewCycle(inputs, outputPath, "data.csv", analysis, uploader,
			usecase.WithSnapshotStore(snapshots, 30*24*time.Hour))
		result := gt.R1(uc.RunCycle(context.Background())).NoError(t)
		gt.String(t, result.SnapshotPath).Contains("data-20240317-150000.csv")

		select {
		case olderThan := <-pruned:
			gt.Value(t, olderThan).Equal(30 * 24 * time.Hour)
		case <-time.After(3 * time.Second):
			t.Fatal("prune was not dispatched")
		}
	})

	t.Run("archive failure does not fail the cycle", func(t *testing.T) {
		snapshots := &mockSnapshots{
			storeFunc: func(ctx context.Context, data []byte, ts time.Time) (string, error) {
				return "", goerr.New("bucket not found")
			},
		}

		uc := usecase.NewCycle(inputs, outputPath, "data.csv", analysis, uploader,
			usecase.WithSnapshotStore(snapshots, 0))
		result := gt.R1(uc.RunCycle(context.Background())).NoError(t)
		gt.Value(t, result.SnapshotPath).Equal("")
	})
}
