// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "garbage", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewLoggerLevelSelection(t *testing.T) {
	orig := logLevel
	defer func() { logLevel = orig }()

	ctx := context.Background()

	// The config file's level applies when the flag is left alone.
	logLevel = "info"
	logger := newLogger(false, "debug")
	if !logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("config level debug not applied")
	}

	// An explicit flag wins over the config file.
	logLevel = "error"
	logger = newLogger(true, "debug")
	if logger.Enabled(ctx, slog.LevelWarn) {
		t.Error("flag level error not applied over config level")
	}

	// No config level falls back to the flag default.
	logLevel = "warn"
	logger = newLogger(false, "")
	if logger.Enabled(ctx, slog.LevelInfo) || !logger.Enabled(ctx, slog.LevelWarn) {
		t.Error("flag default not applied when config level is empty")
	}
}
