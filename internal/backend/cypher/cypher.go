// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cypher runs benchmark queries against Neo4j over the bolt
// protocol. Each Query call uses a dedicated read session; record
// values come back as driver-native Go types.
package cypher

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"snbench/cli/internal/backend"
	"snbench/cli/internal/bindings"
)

func init() {
	backend.RegisterOpener(backend.KindNeo4j, open)
}

// Conn is a Neo4j benchmark session.
type Conn struct {
	driver   neo4j.DriverWithContext
	database string
	endpoint string
}

func open(ctx context.Context, cfg backend.Config) (backend.Connection, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.Endpoint, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, &backend.ConnError{Endpoint: cfg.Endpoint, Err: err}
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, &backend.ConnError{Endpoint: cfg.Endpoint, Err: err}
	}

	return &Conn{driver: driver, database: cfg.Database, endpoint: cfg.Endpoint}, nil
}

// Query executes the Cypher text in a read session and returns all
// records keyed by their result keys.
func (c *Conn) Query(ctx context.Context, query string) ([]bindings.Row, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: c.database,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("cypher query: %w", err)
	}

	var out []bindings.Row
	for result.Next(ctx) {
		record := result.Record()

		row := make(bindings.Row, len(record.Keys))
		for i, key := range record.Keys {
			row[key] = record.Values[i]
		}
		out = append(out, row)
	}
	if err := result.Err(); err != nil {
		return out, &backend.ConnError{Endpoint: c.endpoint, Err: err}
	}

	return out, nil
}

// Close shuts down the driver and its connection pool.
func (c *Conn) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}
