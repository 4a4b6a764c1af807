// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend defines the database session contract the benchmark
// adapter layer runs against, and a factory that opens one of the
// supported backends from a flat configuration. Implementations live in
// subpackages; each executes a final query text and hands rows back in
// the neutral bindings.Row form.
package backend

import (
	"context"
	"errors"
	"fmt"

	"snbench/cli/internal/bindings"
)

// Supported backend kinds.
const (
	KindSPARQL   = "sparql"
	KindPostgres = "postgres"
	KindNeo4j    = "neo4j"
)

// Config holds the flat key-value connection settings the orchestrator
// supplies. Endpoint is a SPARQL URL, a postgres DSN, or a bolt URI
// depending on Kind.
type Config struct {
	Kind     string `yaml:"kind"`
	Endpoint string `yaml:"endpoint"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// Connection is one live backend session. A Connection is used by a
// single worker at a time; implementations need not be safe for
// concurrent Query calls.
type Connection interface {
	// Query executes the final query text and returns all result rows
	// in backend return order.
	Query(ctx context.Context, query string) ([]bindings.Row, error)
	// Close releases the session.
	Close(ctx context.Context) error
}

// Opener is a constructor for one backend kind.
type Opener func(ctx context.Context, cfg Config) (Connection, error)

var openers = map[string]Opener{}

// RegisterOpener wires a backend kind to its constructor. Called from
// backend subpackage init functions.
func RegisterOpener(kind string, open Opener) {
	if _, dup := openers[kind]; dup {
		panic("backend: opener already registered for " + kind)
	}
	openers[kind] = open
}

// Open constructs a Connection for the configured backend kind.
func Open(ctx context.Context, cfg Config) (Connection, error) {
	open, ok := openers[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("unsupported backend kind %q", cfg.Kind)
	}
	return open(ctx, cfg)
}

// ConnError marks a transport-level connection failure, as opposed to a
// query the backend rejected. The orchestrator applies its retry or
// abort policy based on this distinction; the adapter layer never
// retries.
type ConnError struct {
	Endpoint string
	Err      error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("backend connection %s: %v", e.Endpoint, e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// IsConnectionError reports whether err is a transport-level failure.
func IsConnectionError(err error) bool {
	var ce *ConnError
	return errors.As(err, &ce)
}
