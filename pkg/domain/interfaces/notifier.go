package interfaces

import (
	"context"

	"github.com/jaylaelike/scintpipe/pkg/domain/model"
)

// Notifier reports cycle outcomes to an external channel
type Notifier interface {
	// NotifySuccess reports a completed cycle
	NotifySuccess(ctx context.Context, result *model.CycleResult) error

	// NotifyFailure reports a skipped cycle and its cause
	NotifyFailure(ctx context.Context, err error) error
}
