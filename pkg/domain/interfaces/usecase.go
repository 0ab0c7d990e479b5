package interfaces

import (
	"context"

	"github.com/jaylaelike/scintpipe/pkg/domain/model"
)

// CycleUseCase defines the fetch-process-upload cycle
type CycleUseCase interface {
	// RunCycle executes one full cycle: input check, analysis call,
	// CSV write, upload, optional snapshot. Any failure before the
	// upload leaves the output file untouched.
	RunCycle(ctx context.Context) (*model.CycleResult, error)
}
