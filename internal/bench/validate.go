// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package bench

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"snbench/cli/internal/backend"
	"snbench/cli/internal/registry"
	"snbench/cli/internal/workload"
)

// Expectation pairs an operation with the exact result sequence a
// correct backend must produce for it.
type Expectation struct {
	Operation workload.Operation
	Expected  []json.RawMessage
}

// ValidationResult summarizes a validation pass.
type ValidationResult struct {
	Checked    int      `json:"checked"`
	Passed     int      `json:"passed"`
	Failed     int      `json:"failed"`
	Skipped    int      `json:"skipped"`
	Mismatches []string `json:"mismatches,omitempty"`
}

type expectationLine struct {
	Operation json.RawMessage   `json:"operation"`
	Results   []json.RawMessage `json:"results"`
}

// ReadExpectations parses a validation file: one JSON object per line
// with the operation and its expected result rows.
func ReadExpectations(r io.Reader) ([]Expectation, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var out []Expectation
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}

		var rec expectationLine
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("validation line %d: %w", line, err)
		}

		op, err := workload.Decode(rec.Operation)
		if err != nil {
			return nil, fmt.Errorf("validation line %d: %w", line, err)
		}

		out = append(out, Expectation{Operation: op, Expected: rec.Results})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// Validate dispatches each expectation once on worker 0 and compares
// the mapped results, in order, against the expected rows. Results are
// compared by canonical JSON so field order in the file is irrelevant.
func (r *Runner) Validate(ctx context.Context, expectations []Expectation) (*ValidationResult, error) {
	state := r.reg.WorkerState(0)
	vr := &ValidationResult{}

	for i, exp := range expectations {
		vr.Checked++

		outcome, err := r.reg.Dispatch(ctx, state, exp.Operation)
		if err != nil {
			var unregistered *registry.UnregisteredOperationError
			if errors.As(err, &unregistered) {
				vr.Skipped++
				continue
			}
			if backend.IsConnectionError(err) {
				return vr, err
			}
			vr.Failed++
			vr.Mismatches = append(vr.Mismatches,
				fmt.Sprintf("#%d %s: %v", i, exp.Operation.Kind(), err))
			continue
		}

		if len(outcome.RowErrors) > 0 {
			vr.Failed++
			vr.Mismatches = append(vr.Mismatches,
				fmt.Sprintf("#%d %s: %v", i, exp.Operation.Kind(), outcome.RowErrors[0]))
			continue
		}

		if diff := compare(outcome.Results, exp.Expected); diff != "" {
			vr.Failed++
			vr.Mismatches = append(vr.Mismatches,
				fmt.Sprintf("#%d %s: %s", i, exp.Operation.Kind(), diff))
			r.logger.Warn("validation mismatch",
				slog.String("kind", exp.Operation.Kind().String()),
				slog.String("diff", diff),
			)
			continue
		}

		vr.Passed++
	}

	return vr, nil
}

func compare(got []workload.Result, want []json.RawMessage) string {
	if len(got) != len(want) {
		return fmt.Sprintf("result count mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		gotJSON, err := canonical(got[i])
		if err != nil {
			return fmt.Sprintf("row %d: %v", i, err)
		}
		wantJSON, err := canonical(want[i])
		if err != nil {
			return fmt.Sprintf("row %d: %v", i, err)
		}
		if !bytes.Equal(gotJSON, wantJSON) {
			return fmt.Sprintf("row %d differs: got %s, want %s", i, gotJSON, wantJSON)
		}
	}

	return ""
}

// canonical renders a value as JSON with sorted keys by round-tripping
// through a map.
func canonical(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	return json.Marshal(generic)
}
