package scheduler

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/jaylaelike/scintpipe/pkg/domain/interfaces"
	"github.com/jaylaelike/scintpipe/pkg/domain/model"
)

// Scheduler drives the cycle use case on a fixed interval. Cycles run
// strictly serially in the scheduler's own goroutine; a tick or manual
// trigger arriving while a cycle is in flight is coalesced into at
// most one pending run.
type Scheduler struct {
	cycle    interfaces.CycleUseCase
	interval time.Duration
	notifier interfaces.Notifier
	onError  func(error)

	trigger chan struct{}

	mu     sync.Mutex
	status model.CycleStatus
}

// Option is a functional option for Scheduler configuration
type Option func(*Scheduler)

// WithNotifier reports cycle outcomes to an external channel
func WithNotifier(n interfaces.Notifier) Option {
	return func(s *Scheduler) {
		s.notifier = n
	}
}

// WithErrorHandler installs a hook called with every cycle error,
// in addition to logging.
func WithErrorHandler(handler func(error)) Option {
	return func(s *Scheduler) {
		s.onError = handler
	}
}

// New creates a scheduler running cycle every interval
func New(cycle interfaces.CycleUseCase, interval time.Duration, opts ...Option) *Scheduler {
	s := &Scheduler{
		cycle:    cycle,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run blocks until ctx is cancelled. One cycle runs immediately on
// start, then one per tick or manual trigger.
func (s *Scheduler) Run(ctx context.Context) error {
	logger := ctxlog.From(ctx)
	logger.Info("Scheduler starting", "interval", s.interval.String())

	s.runCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Scheduler stopping")
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		case <-s.trigger:
			s.runCycle(ctx)
		}
	}
}

// Trigger requests an immediate cycle. Returns false when a run is
// already pending and the request was coalesced.
func (s *Scheduler) Trigger() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Status reports the loop state and the last cycle outcome
func (s *Scheduler) Status() model.CycleStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Scheduler) runCycle(ctx context.Context) {
	logger := ctxlog.From(ctx)

	s.setRunning(true)
	defer s.setRunning(false)

	result, err := s.safeRunCycle(ctx)

	s.mu.Lock()
	s.status.CycleCount++
	if err != nil {
		s.status.ErrorCount++
		s.status.LastError = err.Error()
	} else {
		s.status.LastError = ""
		s.status.LastResult = result
	}
	s.mu.Unlock()

	if err != nil {
		logger.Error("Cycle skipped", "error", err)
		if s.onError != nil {
			s.onError(err)
		}
		if s.notifier != nil {
			if nerr := s.notifier.NotifyFailure(ctx, err); nerr != nil {
				logger.Warn("Failed to send failure notification", "error", nerr)
			}
		}
		return
	}

	logger.Info("Cycle completed",
		"cycle_id", result.ID,
		"records", result.RecordCount,
		"duration", result.Duration.String(),
		"commit_url", result.CommitURL,
	)
	if s.notifier != nil {
		if nerr := s.notifier.NotifySuccess(ctx, result); nerr != nil {
			logger.Warn("Failed to send success notification", "error", nerr)
		}
	}
}

// safeRunCycle shields the loop from panics inside a cycle so one bad
// response cannot stop the schedule.
func (s *Scheduler) safeRunCycle(ctx context.Context) (result *model.CycleResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = goerr.New("panic in cycle",
				goerr.V("recover", r),
				goerr.V("stack", string(debug.Stack())),
			)
		}
	}()
	return s.cycle.RunCycle(ctx)
}

func (s *Scheduler) setRunning(running bool) {
	s.mu.Lock()
	s.status.Running = running
	s.mu.Unlock()
}
