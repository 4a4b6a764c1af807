// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package bench

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"snbench/cli/internal/backend"
	"snbench/cli/internal/bindings"
	"snbench/cli/internal/registry"
	"snbench/cli/internal/templates"
	"snbench/cli/internal/workload"
)

// fakeConn replays canned rows, or fails every query with err.
type fakeConn struct {
	rows []bindings.Row
	err  error
}

func (c *fakeConn) Query(ctx context.Context, query string) ([]bindings.Row, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.rows, nil
}

func (c *fakeConn) Close(ctx context.Context) error { return nil }

type countResult struct {
	Count int64 `json:"count"`
}

func (countResult) Kind() workload.Kind { return workload.KindComplex4 }

type countHandler struct{}

func (countHandler) Mode() registry.Mode { return registry.List }

func (countHandler) BuildQuery(state *registry.ConnectionState, op workload.Operation) (string, error) {
	return "SELECT count", nil
}

func (countHandler) MapRow(row bindings.Row) (workload.Result, error) {
	n, err := bindings.Long(row, "count")
	if err != nil {
		return nil, err
	}
	return countResult{Count: n}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newBenchRegistry registers the count handler and wires one state per
// connection.
func newBenchRegistry(t *testing.T, conns ...backend.Connection) *registry.Registry {
	t.Helper()

	dir := t.TempDir()
	name := workload.KindComplex4.TemplateName() + ".sparql"
	if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT"), 0o600); err != nil {
		t.Fatal(err)
	}
	store, err := templates.Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	r := registry.New()
	if err := r.Register(workload.KindComplex4, countHandler{}); err != nil {
		t.Fatal(err)
	}

	states := make([]*registry.ConnectionState, 0, len(conns))
	for _, conn := range conns {
		states = append(states, &registry.ConnectionState{Conn: conn, Templates: store})
	}
	if err := r.InitWithStates(store, states...); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRun(t *testing.T) {
	conn := &fakeConn{rows: []bindings.Row{{"count": int64(7)}}}
	runner := NewRunner(discardLogger(), newBenchRegistry(t, conn))

	ops := []workload.Operation{
		&workload.Complex4{PersonID: 933},
		&workload.Complex4{PersonID: 1129},
		&workload.Short1{PersonID: 933},
		&workload.Complex4{PersonID: 4398},
	}

	var progress atomic.Int32
	result, err := runner.Run(context.Background(), "sparql", ops, func() {
		progress.Add(1)
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Succeeded != 3 || result.Failed != 0 || result.Skipped != 1 {
		t.Errorf("Succeeded/Failed/Skipped = %d/%d/%d, want 3/0/1",
			result.Succeeded, result.Failed, result.Skipped)
	}
	if len(result.Measurements) != len(ops) {
		t.Errorf("len(Measurements) = %d, want %d", len(result.Measurements), len(ops))
	}
	if got := progress.Load(); got != int32(len(ops)) {
		t.Errorf("progress callbacks = %d, want %d", got, len(ops))
	}
	if result.RunID == "" {
		t.Error("RunID is empty")
	}

	// Measurement order follows workload order regardless of scheduling.
	if result.Measurements[2].Kind != workload.KindShort1 || !result.Measurements[2].Skipped {
		t.Errorf("Measurements[2] = %+v, want skipped short_1", result.Measurements[2])
	}
	if result.Measurements[0].Rows != 1 {
		t.Errorf("Measurements[0].Rows = %d, want 1", result.Measurements[0].Rows)
	}
}

func TestRunMultipleWorkers(t *testing.T) {
	connA := &fakeConn{rows: []bindings.Row{{"count": int64(7)}}}
	connB := &fakeConn{rows: []bindings.Row{{"count": int64(7)}}}
	runner := NewRunner(discardLogger(), newBenchRegistry(t, connA, connB))

	ops := make([]workload.Operation, 40)
	for i := range ops {
		ops[i] = &workload.Complex4{PersonID: int64(i + 1)}
	}

	result, err := runner.Run(context.Background(), "sparql", ops, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Succeeded != 40 {
		t.Errorf("Succeeded = %d, want 40", result.Succeeded)
	}
	if result.Workers != 2 {
		t.Errorf("Workers = %d, want 2", result.Workers)
	}
}

func TestRunSerializesProgressCallback(t *testing.T) {
	connA := &fakeConn{rows: []bindings.Row{{"count": int64(7)}}}
	connB := &fakeConn{rows: []bindings.Row{{"count": int64(7)}}}
	runner := NewRunner(discardLogger(), newBenchRegistry(t, connA, connB))

	ops := make([]workload.Operation, 60)
	for i := range ops {
		ops[i] = &workload.Complex4{PersonID: int64(i + 1)}
	}

	var inFlight, calls atomic.Int32
	result, err := runner.Run(context.Background(), "sparql", ops, func() {
		if inFlight.Add(1) > 1 {
			t.Error("progress callback entered concurrently")
		}
		time.Sleep(50 * time.Microsecond)
		inFlight.Add(-1)
		calls.Add(1)
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Succeeded != 60 {
		t.Errorf("Succeeded = %d, want 60", result.Succeeded)
	}
	if got := calls.Load(); got != 60 {
		t.Errorf("progress callbacks = %d, want 60", got)
	}
}

func TestRunRowErrorsFailOperation(t *testing.T) {
	conn := &fakeConn{rows: []bindings.Row{
		{"count": int64(7)},
		{"count": "seven"},
	}}
	runner := NewRunner(discardLogger(), newBenchRegistry(t, conn))

	result, err := runner.Run(context.Background(), "sparql",
		[]workload.Operation{&workload.Complex4{PersonID: 933}}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Failed != 1 || result.Succeeded != 0 {
		t.Errorf("Failed/Succeeded = %d/%d, want 1/0", result.Failed, result.Succeeded)
	}
	m := result.Measurements[0]
	if m.Rows != 1 || m.RowErrors != 1 || m.Error == "" {
		t.Errorf("Measurement = %+v", m)
	}
}

func TestRunAbortsOnConnectionError(t *testing.T) {
	conn := &fakeConn{err: &backend.ConnError{Endpoint: "http://localhost:8890"}}
	runner := NewRunner(discardLogger(), newBenchRegistry(t, conn))

	ops := make([]workload.Operation, 10)
	for i := range ops {
		ops[i] = &workload.Complex4{PersonID: int64(i + 1)}
	}

	_, err := runner.Run(context.Background(), "sparql", ops, nil)
	if !backend.IsConnectionError(err) {
		t.Fatalf("Run() error = %v, want connection error", err)
	}
}

func TestReadExpectations(t *testing.T) {
	input := `{"operation":{"kind":"complex_4","person_id":933,"limit":10},"results":[{"count":7}]}` + "\n" +
		`{"operation":{"kind":"complex_13","person1_id":933,"person2_id":1129},"results":[{"length":-1}]}` + "\n"

	exps, err := ReadExpectations(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadExpectations() error = %v", err)
	}
	if len(exps) != 2 {
		t.Fatalf("len = %d, want 2", len(exps))
	}
	if exps[0].Operation.Kind() != workload.KindComplex4 {
		t.Errorf("first kind = %v, want %v", exps[0].Operation.Kind(), workload.KindComplex4)
	}
	if len(exps[0].Expected) != 1 {
		t.Errorf("first expected rows = %d, want 1", len(exps[0].Expected))
	}
}

func TestReadExpectationsRejectsUnknownKind(t *testing.T) {
	input := `{"operation":{"kind":"complex_99"},"results":[]}` + "\n"
	if _, err := ReadExpectations(strings.NewReader(input)); err == nil {
		t.Fatal("ReadExpectations() error = nil, want unknown kind error")
	}
}

func TestValidate(t *testing.T) {
	conn := &fakeConn{rows: []bindings.Row{{"count": int64(7)}}}
	runner := NewRunner(discardLogger(), newBenchRegistry(t, conn))

	exps := []Expectation{
		{
			Operation: &workload.Complex4{PersonID: 933},
			Expected:  mustRaw(t, `{"count":7}`),
		},
		{
			// Field order in the file must not matter, only values.
			Operation: &workload.Complex4{PersonID: 1129},
			Expected:  mustRaw(t, `{"count": 7}`),
		},
		{
			Operation: &workload.Complex4{PersonID: 4398},
			Expected:  mustRaw(t, `{"count":9}`),
		},
		{
			Operation: &workload.Short1{PersonID: 933},
			Expected:  mustRaw(t, `{"first_name":"Jan"}`),
		},
	}

	vr, err := runner.Validate(context.Background(), exps)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if vr.Checked != 4 || vr.Passed != 2 || vr.Failed != 1 || vr.Skipped != 1 {
		t.Errorf("ValidationResult = %+v, want 4 checked, 2 passed, 1 failed, 1 skipped", vr)
	}
	if len(vr.Mismatches) != 1 {
		t.Fatalf("Mismatches = %v, want 1", vr.Mismatches)
	}
	if !strings.Contains(vr.Mismatches[0], "complex_4") {
		t.Errorf("Mismatches[0] = %q, want the kind named", vr.Mismatches[0])
	}
}

func TestValidateAbortsOnConnectionError(t *testing.T) {
	conn := &fakeConn{err: &backend.ConnError{Endpoint: "http://localhost:8890"}}
	runner := NewRunner(discardLogger(), newBenchRegistry(t, conn))

	_, err := runner.Validate(context.Background(), []Expectation{
		{Operation: &workload.Complex4{PersonID: 933}, Expected: mustRaw(t, `{"count":7}`)},
	})
	if !backend.IsConnectionError(err) {
		t.Fatalf("Validate() error = %v, want connection error", err)
	}
}

func mustRaw(t *testing.T, rows ...string) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		out = append(out, json.RawMessage(r))
	}
	return out
}
