// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for secure logging output. It
// masks credentials embedded in connection strings and endpoint URLs so
// database passwords never reach logs, reports, or terminal output.
package logging

import (
	"regexp"
)

var (
	rePassword = regexp.MustCompile(`(?i)(password=)([^\s;]+)`)
	reURLCreds = regexp.MustCompile(`(?i)([a-z+]+://)([^:/@]+):([^@]+)(@)`) // postgres:// bolt:// http(s)://
	reAPIKey   = regexp.MustCompile(`(?i)(apikey=|api_key=)([^\s;]+)`)
	reEnvPass  = regexp.MustCompile(`(PGPASSWORD|NEO4J_PASSWORD|SNBENCH_PASSWORD)=\S+`)
)

// Mask replaces sensitive values in the input string with "*". URL
// style connection strings have both username and password masked.
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reURLCreds.ReplaceAllString(out, "$1*:*$4")
	out = reAPIKey.ReplaceAllString(out, "$1***")
	out = reEnvPass.ReplaceAllString(out, "$1=***")
	return out
}
