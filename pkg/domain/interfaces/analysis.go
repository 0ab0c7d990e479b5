package interfaces

import (
	"context"

	"github.com/jaylaelike/scintpipe/pkg/domain/model"
)

// AnalysisClient defines operations against the scintillation analysis API
type AnalysisClient interface {
	// Analyze posts the three input files as one multipart request and
	// decodes the response
	Analyze(ctx context.Context, inputs model.InputFileSet) (*model.AnalysisResponse, error)

	// Ping checks that the endpoint is reachable
	Ping(ctx context.Context) error
}
