// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package templates

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemplate(t *testing.T, dir, name, text string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "interactive-complex-4.sparql", "SELECT ?tagName WHERE { }")
	writeTemplate(t, dir, "interactive-complex-13.cypher", "MATCH (p:Person) RETURN p")

	store, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	text, err := store.Get("interactive-complex-4")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if text != "SELECT ?tagName WHERE { }" {
		t.Errorf("Get() = %q", text)
	}

	if !store.Has("interactive-complex-13") {
		t.Error("Has(interactive-complex-13) = false, want true")
	}
	if store.Has("interactive-complex-7") {
		t.Error("Has(interactive-complex-7) = true, want false")
	}
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Load() error = %v, want LoadError", err)
	}
}

func TestGetMissingTemplate(t *testing.T) {
	store, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	_, err = store.Get("interactive-complex-4")
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Get() error = %v, want LoadError", err)
	}
	if loadErr.Name != "interactive-complex-4" {
		t.Errorf("Name = %q, want %q", loadErr.Name, "interactive-complex-4")
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		params   map[string]string
		expected string
	}{
		{
			name:     "single token",
			text:     "SELECT * WHERE { ?p :id %personId% }",
			params:   map[string]string{"personId": "933"},
			expected: "SELECT * WHERE { ?p :id 933 }",
		},
		{
			name:     "repeated token",
			text:     "%tagName% or %tagName%",
			params:   map[string]string{"tagName": "berlin_wall"},
			expected: "berlin_wall or berlin_wall",
		},
		{
			name:     "unknown token stays visible",
			text:     "LIMIT %limit%",
			params:   map[string]string{"personId": "933"},
			expected: "LIMIT %limit%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Substitute(tt.text, tt.params)
			if got != tt.expected {
				t.Errorf("Substitute() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDateTime(t *testing.T) {
	got := DateTime(1325376000000)
	if got != "2012-01-01T00:00:00.000+00:00" {
		t.Errorf("DateTime() = %q, want %q", got, "2012-01-01T00:00:00.000+00:00")
	}
}

func TestDate(t *testing.T) {
	got := Date(1325376000000)
	if got != "2012-01-01" {
		t.Errorf("Date() = %q, want %q", got, "2012-01-01")
	}
}
