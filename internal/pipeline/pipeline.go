package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrCancelled is returned (possibly wrapped) by a step when the user
// declined to continue.
var ErrCancelled = errors.New("aborted")

// Step is one named stage of a pipeline.
type Step[C any] struct {
	Name string
	Run  func(ctx context.Context, c C) (C, error)
}

// StepError reports which step failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Cancel wraps ErrCancelled with a reason.
func Cancel(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrCancelled)
}

// IsCancelled reports whether err marks a user cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// Run executes steps in order, threading the context value from one step to
// the next. It returns the value produced by the last step, or the zero value
// and the first error encountered. A cancellation is returned as-is; any other
// failure is wrapped in a *StepError.
func Run[C any](ctx context.Context, logger *slog.Logger, steps []Step[C], initial C) (C, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	current := initial
	for i, step := range steps {
		var zero C
		if err := ctx.Err(); err != nil {
			return zero, &StepError{Step: step.Name, Err: err}
		}

		log := logger.With("step", step.Name, "index", i+1, "total", len(steps))
		log.Debug("step starting")
		start := time.Now()

		next, err := step.Run(ctx, current)
		if err != nil {
			if IsCancelled(err) {
				log.Debug("step cancelled", "reason", err)
				return zero, err
			}
			log.Debug("step failed", "error", err, "elapsed", time.Since(start))
			return zero, &StepError{Step: step.Name, Err: err}
		}

		log.Debug("step finished", "elapsed", time.Since(start))
		current = next
	}
	return current, nil
}
