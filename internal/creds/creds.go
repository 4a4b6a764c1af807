// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package creds stores backend connection secrets in the OS keyring and
// resolves them at run time. Resolution order is environment first
// (SNBENCH_ENDPOINT / SNBENCH_PASSWORD, or DATABASE_URL for postgres),
// then the keyring entry saved by `snbench connect`.
package creds

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/99designs/keyring"
)

// ServiceName identifies the keyring namespace.
const ServiceName = "snbench"

// ErrNotFound reports that no credential is stored for a backend kind.
var ErrNotFound = errors.New("no stored credentials")

// Store wraps the OS keyring for snbench secrets.
type Store struct {
	ring keyring.Keyring
}

// OpenStore opens the OS keyring using native platform backends only;
// no file fallback, so secrets never land on disk in the clear.
func OpenStore() (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: ServiceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.WinCredBackend,
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open OS keyring: %w", err)
	}
	return &Store{ring: ring}, nil
}

func endpointKey(kind string) string { return kind + "_endpoint" }
func passwordKey(kind string) string { return kind + "_password" }

// SaveEndpoint stores the endpoint (connection string) and password for
// a backend kind.
func (s *Store) SaveEndpoint(kind, endpoint, password string) error {
	if err := s.ring.Set(keyring.Item{
		Key:  endpointKey(kind),
		Data: []byte(endpoint),
	}); err != nil {
		return fmt.Errorf("store endpoint: %w", err)
	}
	if password == "" {
		return nil
	}
	if err := s.ring.Set(keyring.Item{
		Key:  passwordKey(kind),
		Data: []byte(password),
	}); err != nil {
		return fmt.Errorf("store password: %w", err)
	}
	return nil
}

// LoadEndpoint returns the stored endpoint and password for a backend
// kind, or ErrNotFound.
func (s *Store) LoadEndpoint(kind string) (endpoint, password string, err error) {
	item, err := s.ring.Get(endpointKey(kind))
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", "", ErrNotFound
		}
		return "", "", fmt.Errorf("load endpoint: %w", err)
	}
	endpoint = string(item.Data)

	if pw, err := s.ring.Get(passwordKey(kind)); err == nil {
		password = string(pw.Data)
	}

	return endpoint, password, nil
}

// DeleteEndpoint removes the stored endpoint and password for a kind.
func (s *Store) DeleteEndpoint(kind string) error {
	if err := s.ring.Remove(endpointKey(kind)); err != nil &&
		!errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	if err := s.ring.Remove(passwordKey(kind)); err != nil &&
		!errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

// ResolveEndpoint finds the endpoint and password for a backend kind:
// environment variables win, then the keyring. Returns ErrNotFound
// when neither source has one.
func ResolveEndpoint(kind string) (endpoint, password string, err error) {
	if env := strings.TrimSpace(os.Getenv("SNBENCH_ENDPOINT")); env != "" {
		return env, os.Getenv("SNBENCH_PASSWORD"), nil
	}
	if kind == "postgres" {
		if env := strings.TrimSpace(os.Getenv("DATABASE_URL")); env != "" {
			return env, "", nil
		}
	}

	store, err := OpenStore()
	if err != nil {
		return "", "", err
	}
	return store.LoadEndpoint(kind)
}
