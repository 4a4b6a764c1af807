// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package registry maps benchmark operation kinds to their query
// handlers and manages the per-worker connection state handlers run
// against. The tag-to-handler table is populated before Init and is
// read-only afterwards, so all workers share it without locking; each
// worker owns exactly one ConnectionState.
package registry

import (
	"context"
	"errors"
	"fmt"

	"snbench/cli/internal/backend"
	"snbench/cli/internal/bindings"
	"snbench/cli/internal/templates"
	"snbench/cli/internal/workload"
)

// Mode declares how many result rows a handler expects.
type Mode uint8

const (
	// List handlers map zero or more rows into an ordered result
	// sequence.
	List Mode = iota
	// Singleton handlers expect exactly one row and substitute a
	// default result when the backend returns none.
	Singleton
)

// Handler builds the backend query for one operation kind and maps its
// result rows into typed results.
type Handler interface {
	Mode() Mode
	BuildQuery(state *ConnectionState, op workload.Operation) (string, error)
	MapRow(row bindings.Row) (workload.Result, error)
}

// SingletonHandler is implemented by handlers with Mode Singleton; the
// default result stands in when the backend returns zero rows.
type SingletonHandler interface {
	Handler
	Default() workload.Result
}

// ConnectionState is one worker's live backend session plus the shared
// read-only template store. Never shared across workers.
type ConnectionState struct {
	Conn      backend.Connection
	Templates *templates.Store
}

// State is the registry lifecycle position.
type State uint8

const (
	Uninitialized State = iota
	Initialized
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// DuplicateRegistrationError reports a second Register call for a kind.
type DuplicateRegistrationError struct {
	Kind workload.Kind
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("handler already registered for %s", e.Kind)
}

// UnregisteredOperationError reports a dispatch for a kind with no
// handler. A configuration gap, not a data error.
type UnregisteredOperationError struct {
	Kind workload.Kind
}

func (e *UnregisteredOperationError) Error() string {
	return fmt.Sprintf("no handler registered for %s", e.Kind)
}

// IllegalStateError reports a lifecycle violation, e.g. Dispatch before
// Init.
type IllegalStateError struct {
	Op    string
	State State
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("%s called on %s registry", e.Op, e.State)
}

// RowMappingError reports a coercion failure on one result row. It
// carries the operation kind, the row's position in the result set, and
// the offending field; sibling rows are unaffected.
type RowMappingError struct {
	Kind    workload.Kind
	Ordinal int
	Field   string
	Err     error
}

func (e *RowMappingError) Error() string {
	return fmt.Sprintf("%s row %d field %q: %v", e.Kind, e.Ordinal, e.Field, e.Err)
}

func (e *RowMappingError) Unwrap() error { return e.Err }

// Outcome is the result of one dispatch. Results holds the mapped rows
// in backend return order; RowErrors the rows that failed mapping. The
// caller decides whether row failures are fatal for its run.
type Outcome struct {
	Kind      workload.Kind
	Results   []workload.Result
	RowErrors []*RowMappingError
	// Truncated counts surplus rows dropped after the first row of a
	// singleton dispatch.
	Truncated int
}

// Registry is the tag-to-handler table plus lifecycle management. One
// Registry serves all workers; ConnectionStates are per worker.
type Registry struct {
	state    State
	handlers map[workload.Kind]Handler
	states   []*ConnectionState
	store    *templates.Store
}

// New creates an empty, uninitialized registry.
func New() *Registry {
	return &Registry{handlers: make(map[workload.Kind]Handler)}
}

// Register associates a kind with its handler. Valid only before Init;
// registering a kind twice fails and leaves the first registration in
// effect.
func (r *Registry) Register(kind workload.Kind, h Handler) error {
	if r.state != Uninitialized {
		return &IllegalStateError{Op: "Register", State: r.state}
	}
	if _, dup := r.handlers[kind]; dup {
		return &DuplicateRegistrationError{Kind: kind}
	}

	if h.Mode() == Singleton {
		if _, ok := h.(SingletonHandler); !ok {
			return fmt.Errorf("handler for %s declares singleton mode without a default result", kind)
		}
	}

	r.handlers[kind] = h
	return nil
}

// Registered reports whether a handler exists for kind.
func (r *Registry) Registered(kind workload.Kind) bool {
	_, ok := r.handlers[kind]
	return ok
}

// Kinds returns the registered kinds in unspecified order.
func (r *Registry) Kinds() []workload.Kind {
	kinds := make([]workload.Kind, 0, len(r.handlers))
	for k := range r.handlers {
		kinds = append(kinds, k)
	}
	return kinds
}

// Init loads the template store, verifies every registered kind has a
// template, and opens one backend connection per worker. Any failure is
// fatal and leaves the registry uninitialized.
func (r *Registry) Init(ctx context.Context, cfg backend.Config, templateDir string, workers int) error {
	if r.state != Uninitialized {
		return &IllegalStateError{Op: "Init", State: r.state}
	}
	if workers < 1 {
		return fmt.Errorf("worker count must be positive, got %d", workers)
	}

	store, err := templates.Load(templateDir)
	if err != nil {
		return err
	}
	for kind := range r.handlers {
		if !store.Has(kind.TemplateName()) {
			return &templates.LoadError{Dir: templateDir, Name: kind.TemplateName()}
		}
	}

	states := make([]*ConnectionState, 0, workers)
	for i := 0; i < workers; i++ {
		conn, err := backend.Open(ctx, cfg)
		if err != nil {
			for _, st := range states {
				_ = st.Conn.Close(ctx)
			}
			return err
		}
		states = append(states, &ConnectionState{Conn: conn, Templates: store})
	}

	r.store = store
	r.states = states
	r.state = Initialized
	return nil
}

// InitWithStates installs pre-built connection states and the template
// store directly. Test seam and embedding hook for orchestrators that
// manage their own connections.
func (r *Registry) InitWithStates(store *templates.Store, states ...*ConnectionState) error {
	if r.state != Uninitialized {
		return &IllegalStateError{Op: "Init", State: r.state}
	}
	if len(states) == 0 {
		return errors.New("at least one connection state required")
	}
	for kind := range r.handlers {
		if !store.Has(kind.TemplateName()) {
			return &templates.LoadError{Name: kind.TemplateName()}
		}
	}

	r.store = store
	r.states = states
	r.state = Initialized
	return nil
}

// WorkerState returns the worker's connection state. Workers are
// numbered 0..workers-1.
func (r *Registry) WorkerState(i int) *ConnectionState {
	return r.states[i]
}

// Workers returns the number of connection states held.
func (r *Registry) Workers() int {
	return len(r.states)
}

// Templates returns the loaded template store, nil before Init.
func (r *Registry) Templates() *templates.Store {
	return r.store
}

// Dispatch looks up the operation's handler, builds its query, runs it
// on the worker's connection, and maps the returned rows. Backend
// errors pass through unwrapped in kind so the orchestrator can match
// on them.
func (r *Registry) Dispatch(ctx context.Context, state *ConnectionState, op workload.Operation) (*Outcome, error) {
	if r.state != Initialized {
		return nil, &IllegalStateError{Op: "Dispatch", State: r.state}
	}

	kind := op.Kind()
	h, ok := r.handlers[kind]
	if !ok {
		return nil, &UnregisteredOperationError{Kind: kind}
	}

	query, err := h.BuildQuery(state, op)
	if err != nil {
		return nil, fmt.Errorf("build query for %s: %w", kind, err)
	}

	rows, err := state.Conn.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	switch h.Mode() {
	case Singleton:
		return mapSingleton(kind, h.(SingletonHandler), rows)
	default:
		return mapList(kind, h, rows), nil
	}
}

// Close releases every worker's backend connection. The registry cannot
// be reused afterwards.
func (r *Registry) Close(ctx context.Context) error {
	if r.state != Initialized {
		return &IllegalStateError{Op: "Close", State: r.state}
	}

	var firstErr error
	for _, st := range r.states {
		if err := st.Conn.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	r.state = Closed
	return firstErr
}

func mapList(kind workload.Kind, h Handler, rows []bindings.Row) *Outcome {
	out := &Outcome{Kind: kind}
	for i, row := range rows {
		result, err := h.MapRow(row)
		if err != nil {
			out.RowErrors = append(out.RowErrors, newRowError(kind, i, err))
			continue
		}
		out.Results = append(out.Results, result)
	}
	return out
}

func mapSingleton(kind workload.Kind, h SingletonHandler, rows []bindings.Row) (*Outcome, error) {
	out := &Outcome{Kind: kind}

	if len(rows) == 0 {
		out.Results = []workload.Result{h.Default()}
		return out, nil
	}

	result, err := h.MapRow(rows[0])
	if err != nil {
		// The one expected row failed: dispatch-level failure.
		return nil, newRowError(kind, 0, err)
	}

	out.Results = []workload.Result{result}
	out.Truncated = len(rows) - 1
	return out, nil
}

// newRowError lifts a field-level coercion error to row level, keeping
// the offending field name when the cause carries one.
func newRowError(kind workload.Kind, ordinal int, err error) *RowMappingError {
	field := ""

	var missing *bindings.MissingFieldError
	var mismatch *bindings.TypeMismatchError
	var dateErr *bindings.DateParseError

	switch {
	case errors.As(err, &missing):
		field = missing.Field
	case errors.As(err, &mismatch):
		field = mismatch.Field
	case errors.As(err, &dateErr):
		field = dateErr.Field
	}

	return &RowMappingError{Kind: kind, Ordinal: ordinal, Field: field, Err: err}
}
