// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package bench drives a benchmark run: it fans a workload out to a
// pool of workers, each of which runs a plain sequential loop over its
// own connection state (pull operation, dispatch, record latency). The
// adapter layer below has no concurrency of its own; all scheduling
// lives here.
package bench

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"snbench/cli/internal/backend"
	"snbench/cli/internal/registry"
	"snbench/cli/internal/workload"
)

// Measurement records the outcome of one dispatched operation.
type Measurement struct {
	Kind      workload.Kind `json:"kind"`
	Latency   time.Duration `json:"latency_ns"`
	Rows      int           `json:"rows"`
	RowErrors int           `json:"row_errors"`
	Error     string        `json:"error,omitempty"`
	// Skipped marks operations with no registered handler; they are
	// excluded from latency aggregates but counted in the run summary.
	Skipped bool `json:"skipped,omitempty"`
}

// RunResult is the structured output of one benchmark run.
type RunResult struct {
	RunID        string        `json:"run_id"`
	Backend      string        `json:"backend"`
	Workers      int           `json:"workers"`
	Started      time.Time     `json:"started"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	Succeeded    int           `json:"succeeded"`
	Failed       int           `json:"failed"`
	Skipped      int           `json:"skipped"`
	Measurements []Measurement `json:"measurements"`
}

// Runner executes workloads through an initialized registry.
type Runner struct {
	logger *slog.Logger
	reg    *registry.Registry
}

// NewRunner creates a Runner over an initialized registry.
func NewRunner(logger *slog.Logger, reg *registry.Registry) *Runner {
	return &Runner{
		logger: logger.With(slog.String("component", "bench")),
		reg:    reg,
	}
}

// Run dispatches every operation through the registry using one worker
// per registry connection state. onDone, when non-nil, is called after
// each completed operation for progress reporting; calls are serialized,
// so the callback needs no locking of its own. A connection-level
// failure aborts the run; row mapping failures fail only the affected
// operation.
func (r *Runner) Run(ctx context.Context, backendKind string, ops []workload.Operation, onDone func()) (*RunResult, error) {
	result := &RunResult{
		RunID:        uuid.NewString(),
		Backend:      backendKind,
		Workers:      r.reg.Workers(),
		Started:      time.Now(),
		Measurements: make([]Measurement, len(ops)),
	}

	r.logger.Info("starting benchmark run",
		slog.String("run_id", result.RunID),
		slog.String("backend", backendKind),
		slog.Int("operations", len(ops)),
		slog.Int("workers", result.Workers),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	indexes := make(chan int)
	go func() {
		defer close(indexes)
		for i := range ops {
			select {
			case indexes <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var (
		wg       sync.WaitGroup
		fatalMu  sync.Mutex
		fatalErr error
		doneMu   sync.Mutex
	)

	abort := func(err error) {
		fatalMu.Lock()
		if fatalErr == nil {
			fatalErr = err
		}
		fatalMu.Unlock()
		cancel()
	}

	for w := 0; w < r.reg.Workers(); w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			state := r.reg.WorkerState(worker)
			for i := range indexes {
				m, fatal := r.dispatchOne(ctx, state, ops[i])
				result.Measurements[i] = m

				if onDone != nil {
					doneMu.Lock()
					onDone()
					doneMu.Unlock()
				}

				if fatal != nil {
					abort(fatal)
					return
				}
				if ctx.Err() != nil {
					return
				}
			}
		}(w)
	}

	wg.Wait()
	result.Elapsed = time.Since(result.Started)

	if fatalErr != nil {
		return result, fatalErr
	}

	for _, m := range result.Measurements {
		switch {
		case m.Skipped:
			result.Skipped++
		case m.Error != "" || m.RowErrors > 0:
			result.Failed++
		default:
			result.Succeeded++
		}
	}

	r.logger.Info("benchmark run finished",
		slog.String("run_id", result.RunID),
		slog.Duration("elapsed", result.Elapsed),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed),
		slog.Int("skipped", result.Skipped),
	)

	return result, nil
}

// dispatchOne runs one operation and classifies the outcome. The
// second return value is non-nil only for connection-level failures,
// which abort the whole run; the adapter never retries.
func (r *Runner) dispatchOne(ctx context.Context, state *registry.ConnectionState, op workload.Operation) (Measurement, error) {
	m := Measurement{Kind: op.Kind()}

	start := time.Now()
	outcome, err := r.reg.Dispatch(ctx, state, op)
	m.Latency = time.Since(start)

	if err != nil {
		var unregistered *registry.UnregisteredOperationError
		if errors.As(err, &unregistered) {
			m.Skipped = true
			m.Error = err.Error()
			return m, nil
		}

		m.Error = err.Error()
		if backend.IsConnectionError(err) {
			r.logger.Error("backend connection failed",
				slog.String("kind", op.Kind().String()),
				slog.String("error", err.Error()),
			)
			return m, err
		}
		return m, nil
	}

	m.Rows = len(outcome.Results)
	m.RowErrors = len(outcome.RowErrors)
	if len(outcome.RowErrors) > 0 {
		m.Error = outcome.RowErrors[0].Error()
	}
	if outcome.Truncated > 0 {
		r.logger.Warn("singleton query returned surplus rows",
			slog.String("kind", op.Kind().String()),
			slog.Int("surplus", outcome.Truncated),
		)
	}

	return m, nil
}
