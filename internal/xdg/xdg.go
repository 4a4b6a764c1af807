// Package xdg provides helpers to resolve XDG Base Directory paths for
// snbench. It determines where configuration and run state live on
// Unix-like systems, falling back to the traditional dot-directories
// when the XDG environment variables are unset.
package xdg

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the XDG config directory for snbench.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/snbench when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, "snbench")
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}

// StateDir returns the XDG state directory for snbench, where run
// results land by default. The directory is created with private
// permissions (0700) if missing. It falls back to ~/.local/state/snbench
// when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(base, "snbench")
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
