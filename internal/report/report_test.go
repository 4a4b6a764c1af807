// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"snbench/cli/internal/bench"
	"snbench/cli/internal/workload"
)

func measurement(kind workload.Kind, ms int) bench.Measurement {
	return bench.Measurement{Kind: kind, Latency: time.Duration(ms) * time.Millisecond}
}

func TestBuild(t *testing.T) {
	run := &bench.RunResult{
		RunID:   "test-run",
		Backend: "sparql",
		Workers: 2,
		Elapsed: 3 * time.Second,
		Measurements: []bench.Measurement{
			measurement(workload.KindComplex4, 10),
			measurement(workload.KindComplex4, 30),
			measurement(workload.KindComplex4, 20),
			measurement(workload.KindComplex1, 5),
			{Kind: workload.KindComplex1, Latency: 8 * time.Millisecond, RowErrors: 2},
			{Kind: workload.KindShort1, Skipped: true},
		},
	}

	rep := Build(run)

	if len(rep.Stats) != 3 {
		t.Fatalf("len(Stats) = %d, want 3", len(rep.Stats))
	}

	// Stats come out in kind order.
	if rep.Stats[0].Kind != "complex_1" || rep.Stats[1].Kind != "complex_4" || rep.Stats[2].Kind != "short_1" {
		t.Errorf("stat order = %s, %s, %s", rep.Stats[0].Kind, rep.Stats[1].Kind, rep.Stats[2].Kind)
	}

	c4 := rep.Stats[1]
	if c4.Count != 3 {
		t.Errorf("Count = %d, want 3", c4.Count)
	}
	if c4.Min != 10*time.Millisecond || c4.Max != 30*time.Millisecond {
		t.Errorf("Min/Max = %v/%v", c4.Min, c4.Max)
	}
	if c4.Mean != 20*time.Millisecond {
		t.Errorf("Mean = %v, want 20ms", c4.Mean)
	}
	if c4.P50 != 20*time.Millisecond {
		t.Errorf("P50 = %v, want 20ms", c4.P50)
	}

	c1 := rep.Stats[0]
	if c1.Count != 2 || c1.Failed != 1 {
		t.Errorf("complex_1 Count/Failed = %d/%d, want 2/1", c1.Count, c1.Failed)
	}

	s1 := rep.Stats[2]
	if s1.Skipped != 1 || s1.Count != 0 {
		t.Errorf("short_1 Skipped/Count = %d/%d, want 1/0", s1.Skipped, s1.Count)
	}
}

func TestPercentile(t *testing.T) {
	sorted := []time.Duration{
		1 * time.Millisecond,
		2 * time.Millisecond,
		3 * time.Millisecond,
		4 * time.Millisecond,
		5 * time.Millisecond,
		6 * time.Millisecond,
		7 * time.Millisecond,
		8 * time.Millisecond,
		9 * time.Millisecond,
		10 * time.Millisecond,
	}

	tests := []struct {
		p    int
		want time.Duration
	}{
		{p: 50, want: 5 * time.Millisecond},
		{p: 95, want: 10 * time.Millisecond},
		{p: 99, want: 10 * time.Millisecond},
		{p: 100, want: 10 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := percentile(sorted, tt.p); got != tt.want {
			t.Errorf("percentile(%d) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if got := percentile(nil, 50); got != 0 {
		t.Errorf("percentile(nil) = %v, want 0", got)
	}
}

func TestWriteTable(t *testing.T) {
	rep := &Report{
		RunID:   "test-run",
		Backend: "sparql",
		Workers: 2,
		Elapsed: 3 * time.Second,
		Stats: []KindStats{
			{Kind: "complex_4", Count: 3, Min: 10 * time.Millisecond, Mean: 20 * time.Millisecond,
				P50: 20 * time.Millisecond, P95: 30 * time.Millisecond, P99: 30 * time.Millisecond,
				Max: 30 * time.Millisecond},
			{Kind: "short_1", Skipped: 1},
		},
	}

	var buf bytes.Buffer
	if err := WriteTable(&buf, rep); err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"| complex_4 | 3 | 0 | 10ms | 20ms | 20ms | 30ms | 30ms | 30ms |",
		"1 operations skipped (no registered handler)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTableEmpty(t *testing.T) {
	if err := WriteTable(&bytes.Buffer{}, &Report{}); err == nil {
		t.Fatal("WriteTable() error = nil, want error for empty report")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{d: 0, want: "-"},
		{d: 250 * time.Microsecond, want: "250µs"},
		{d: 42 * time.Millisecond, want: "42ms"},
		{d: 1500 * time.Millisecond, want: "1.50s"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
