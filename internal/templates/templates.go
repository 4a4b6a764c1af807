// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package templates loads and substitutes backend query templates. A
// template directory holds one file per operation, named after the
// operation's template name plus a backend-specific extension, e.g.
// interactive-complex-4.sparql. Parameters are spliced in by replacing
// %name% tokens; the file contents are otherwise opaque to this layer.
package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LoadError reports a template store that cannot serve a required
// template. Startup-level and fatal: a registry must not reach the
// initialized state without all templates for its registered kinds.
type LoadError struct {
	Dir  string
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("load templates from %s: %v", e.Dir, e.Err)
	}
	return fmt.Sprintf("template %q not found in %s", e.Name, e.Dir)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store holds query templates keyed by base name. Immutable after Load;
// safe for concurrent read access by all workers.
type Store struct {
	dir   string
	texts map[string]string
}

// Load reads every regular file in dir into the store. The key for a
// file is its name with the extension stripped, so the same template
// names resolve regardless of backend query language.
func Load(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Dir: dir, Err: err}
	}

	texts := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, &LoadError{Dir: dir, Err: err}
		}

		key := strings.TrimSuffix(name, filepath.Ext(name))
		texts[key] = string(data)
	}

	return &Store{dir: dir, texts: texts}, nil
}

// Get returns the template text for name, or a LoadError if the
// directory had no file for it.
func (s *Store) Get(name string) (string, error) {
	text, ok := s.texts[name]
	if !ok {
		return "", &LoadError{Dir: s.dir, Name: name}
	}
	return text, nil
}

// Has reports whether a template for name was loaded.
func (s *Store) Has(name string) bool {
	_, ok := s.texts[name]
	return ok
}

// Substitute replaces each %key% token in text with its parameter
// value. Tokens without a parameter are left untouched so a missing
// substitution is visible in the built query.
func Substitute(text string, params map[string]string) string {
	pairs := make([]string, 0, 2*len(params))
	for key, value := range params {
		pairs = append(pairs, "%"+key+"%", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// DateTime renders epoch milliseconds as the dateTime literal form the
// dataset uses, e.g. 2012-01-01T00:00:00.000+00:00.
func DateTime(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000+00:00")
}

// Date renders epoch milliseconds as a date literal, e.g. 2012-01-01.
func Date(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}
