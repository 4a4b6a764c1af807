// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package sparql runs benchmark queries against a SPARQL 1.1 Protocol
// endpoint (Virtuoso, Blazegraph, Fuseki). Queries go out as form-encoded
// POSTs; results come back as application/sparql-results+json and every
// bound term lands in the row as its lexical string value, which is what
// the coercion layer parses.
package sparql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"snbench/cli/internal/backend"
	"snbench/cli/internal/bindings"
)

func init() {
	backend.RegisterOpener(backend.KindSPARQL, open)
}

// Conn is a SPARQL endpoint session.
type Conn struct {
	endpoint string
	user     string
	password string
	client   *http.Client
}

func open(ctx context.Context, cfg backend.Config) (backend.Connection, error) {
	if _, err := url.ParseRequestURI(cfg.Endpoint); err != nil {
		return nil, &backend.ConnError{Endpoint: cfg.Endpoint, Err: err}
	}

	// No client-side timeout: cancellation is the orchestrator's call,
	// via ctx.
	return &Conn{
		endpoint: cfg.Endpoint,
		user:     cfg.User,
		password: cfg.Password,
		client:   &http.Client{},
	}, nil
}

// resultsDocument mirrors the SPARQL JSON results format.
type resultsDocument struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]term `json:"bindings"`
	} `json:"results"`
}

type term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
}

// Query POSTs the query text to the endpoint and decodes the JSON
// result bindings. Unbound variables are simply absent from a row.
func (c *Conn) Query(ctx context.Context, query string) ([]bindings.Row, error) {
	form := url.Values{"query": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("sparql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")
	if c.user != "" {
		req.SetBasicAuth(c.user, c.password)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &backend.ConnError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("sparql endpoint returned %s: %s",
			resp.Status, strings.TrimSpace(string(body)))
	}

	var doc resultsDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &backend.ConnError{Endpoint: c.endpoint, Err: err}
	}

	out := make([]bindings.Row, 0, len(doc.Results.Bindings))
	for _, binding := range doc.Results.Bindings {
		row := make(bindings.Row, len(binding))
		for name, t := range binding {
			row[name] = t.Value
		}
		out = append(out, row)
	}

	return out, nil
}

// Close is a no-op; the HTTP client holds no session state.
func (c *Conn) Close(ctx context.Context) error {
	c.client.CloseIdleConnections()
	return nil
}
