package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/linklens/linklens/internal/model"
)

// DefaultConcurrency is the worker cap when none is configured.
// Link audits are network-bound, so a generous cap keeps large sheets fast
// without overwhelming the local machine.
const DefaultConcurrency = 25

// ProgressFunc receives (completed, total) after each finished task.
// Values of completed are strictly increasing up to total.
//
// The callback runs on worker goroutines under a small serializing lock;
// it should return quickly and must not wait on the dispatcher.
type ProgressFunc func(completed, total int)

// Dispatcher runs many analysis tasks concurrently and aggregates their
// results.
//
// Design decision: We use errgroup.SetLimit rather than a hand-rolled
// worker pool because each task is independent and stateless; errgroup
// gives us the concurrency cap and context plumbing with no queue
// bookkeeping of our own.
type Dispatcher struct {
	runner      *Runner
	concurrency int
	logger      *slog.Logger
	progress    ProgressFunc
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithConcurrency sets the maximum number of tasks in flight.
func WithConcurrency(n int) DispatcherOption {
	return func(d *Dispatcher) {
		d.concurrency = n
	}
}

// WithLogger sets a custom logger for the dispatcher.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithProgress registers a progress observer.
func WithProgress(fn ProgressFunc) DispatcherOption {
	return func(d *Dispatcher) {
		d.progress = fn
	}
}

// NewDispatcher creates a Dispatcher that executes tasks via runner.
func NewDispatcher(runner *Runner, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		runner:      runner,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Dispatch runs all tasks and returns exactly one PageAnalysis per task,
// in task order. Task execution and completion order are unspecified.
//
// A task's failure never aborts the batch. Cancelling ctx stops new
// fetches; records for tasks that never ran carry the cancellation error,
// and the context error is returned so callers can tell a partial run from
// a complete one.
//
// Dispatch fails before starting any task when the configuration is
// invalid (concurrency < 1).
func (d *Dispatcher) Dispatch(ctx context.Context, tasks []model.AnalysisTask) ([]model.PageAnalysis, error) {
	if d.concurrency < 1 {
		return nil, fmt.Errorf("analyzer: concurrency must be at least 1, got %d", d.concurrency)
	}

	d.logger.Info("starting batch",
		"total_tasks", len(tasks),
		"concurrency", d.concurrency,
	)
	startTime := time.Now()

	// One slot per task, written by exactly one worker each.
	results := make([]model.PageAnalysis, len(tasks))

	// completed and the progress callback share a lock so observers see a
	// strictly increasing counter even when workers finish simultaneously.
	var progressMu sync.Mutex
	completed := 0
	total := len(tasks)

	g := new(errgroup.Group)
	g.SetLimit(d.concurrency)

	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			select {
			case <-ctx.Done():
				// The batch was cancelled before this task started.
				// Still produce a record so the N-in/N-out invariant holds.
				results[i] = model.PageAnalysis{
					URL:         task.URL,
					MatchStatus: model.MatchStatusSkipped,
					Error:       fmt.Sprintf("batch cancelled: %v", ctx.Err()),
				}
			default:
				results[i] = d.runner.Run(ctx, task)
			}

			progressMu.Lock()
			completed++
			if d.progress != nil {
				d.progress(completed, total)
			}
			progressMu.Unlock()
			return nil
		})
	}

	// Workers never return errors; failures live inside the records.
	_ = g.Wait() //nolint:errcheck // errors are stored in the records

	d.logger.Info("batch complete",
		"total_tasks", len(tasks),
		"elapsed", time.Since(startTime),
	)

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
