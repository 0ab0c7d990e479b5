package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/ctxlog"

	"github.com/jaylaelike/scintpipe/pkg/utils/async"
)

// StatusHandler serves the loop state and the manual trigger endpoint
type StatusHandler struct {
	ctrl CycleController
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(ctrl CycleController) *StatusHandler {
	return &StatusHandler{ctrl: ctrl}
}

// HandleStatus reports the last cycle outcome
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status := h.ctrl.Status()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode status response", "error", err)
	}
}

// HandleRun requests an immediate cycle. The cycle itself runs inside
// the scheduler loop, so the request returns as soon as the trigger is
// queued.
func (h *StatusHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	ctrl := h.ctrl
	async.Dispatch(r.Context(), func(ctx context.Context) error {
		if !ctrl.Trigger() {
			ctxlog.From(ctx).Info("Manual trigger coalesced, cycle already pending")
		}
		return nil
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "triggered",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode trigger response", "error", err)
	}
}
