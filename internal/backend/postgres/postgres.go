// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package postgres runs benchmark queries against PostgreSQL through a
// pgx connection pool. Column values come back as pgx native Go types;
// the coercion layer handles those directly.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"snbench/cli/internal/backend"
	"snbench/cli/internal/bindings"
)

func init() {
	backend.RegisterOpener(backend.KindPostgres, open)
}

// Conn is a PostgreSQL benchmark session backed by a pgx pool.
type Conn struct {
	pool *pgxpool.Pool
}

func open(ctx context.Context, cfg backend.Config) (backend.Connection, error) {
	pool, err := pgxpool.New(ctx, cfg.Endpoint)
	if err != nil {
		return nil, &backend.ConnError{Endpoint: cfg.Endpoint, Err: err}
	}

	// Fail at open time rather than on the first benchmark operation.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &backend.ConnError{Endpoint: cfg.Endpoint, Err: err}
	}

	return &Conn{pool: pool}, nil
}

// Query executes the query text and harvests every row, keyed by the
// result set's column names.
func (c *Conn) Query(ctx context.Context, query string) ([]bindings.Row, error) {
	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres query: %w", err)
	}
	defer rows.Close()

	fds := rows.FieldDescriptions()
	cols := make([]string, len(fds))
	for i, fd := range fds {
		cols[i] = string(fd.Name)
	}

	var out []bindings.Row
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return out, fmt.Errorf("postgres row values: %w", err)
		}

		row := make(bindings.Row, len(cols))
		for i, col := range cols {
			row[col] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return out, &backend.ConnError{Endpoint: "postgres", Err: err}
	}

	return out, nil
}

// Close releases the pool.
func (c *Conn) Close(ctx context.Context) error {
	c.pool.Close()
	return nil
}
