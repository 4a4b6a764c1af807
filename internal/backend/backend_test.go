// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"snbench/cli/internal/bindings"
)

type nopConn struct{}

func (nopConn) Query(ctx context.Context, query string) ([]bindings.Row, error) {
	return nil, nil
}

func (nopConn) Close(ctx context.Context) error { return nil }

func TestOpen(t *testing.T) {
	RegisterOpener("fake", func(ctx context.Context, cfg Config) (Connection, error) {
		if cfg.Endpoint != "fake://host" {
			return nil, fmt.Errorf("unexpected endpoint %q", cfg.Endpoint)
		}
		return nopConn{}, nil
	})

	conn, err := Open(context.Background(), Config{Kind: "fake", Endpoint: "fake://host"})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if conn == nil {
		t.Fatal("Open() returned nil connection")
	}
}

func TestOpenUnsupportedKind(t *testing.T) {
	_, err := Open(context.Background(), Config{Kind: "oracle"})
	if err == nil {
		t.Fatal("Open() error = nil, want unsupported kind error")
	}
}

func TestRegisterOpenerDuplicatePanics(t *testing.T) {
	RegisterOpener("dup", func(ctx context.Context, cfg Config) (Connection, error) {
		return nopConn{}, nil
	})

	defer func() {
		if recover() == nil {
			t.Error("second RegisterOpener did not panic")
		}
	}()
	RegisterOpener("dup", func(ctx context.Context, cfg Config) (Connection, error) {
		return nopConn{}, nil
	})
}

func TestIsConnectionError(t *testing.T) {
	base := errors.New("dial tcp: connection refused")
	wrapped := fmt.Errorf("query failed: %w", &ConnError{Endpoint: "http://localhost:8890", Err: base})

	if !IsConnectionError(wrapped) {
		t.Error("IsConnectionError() = false for wrapped ConnError")
	}
	if IsConnectionError(base) {
		t.Error("IsConnectionError() = true for plain error")
	}
	if !errors.Is(wrapped, base) {
		t.Error("ConnError does not unwrap to its cause")
	}
}
