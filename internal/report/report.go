// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package report aggregates benchmark measurements into per-operation
// latency statistics and formats them as a markdown table or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"snbench/cli/internal/bench"
	"snbench/cli/internal/workload"
)

// KindStats holds the latency aggregate for one operation kind.
type KindStats struct {
	Kind    string        `json:"kind"`
	Count   int           `json:"count"`
	Failed  int           `json:"failed"`
	Skipped int           `json:"skipped"`
	Min     time.Duration `json:"min_ns"`
	Mean    time.Duration `json:"mean_ns"`
	P50     time.Duration `json:"p50_ns"`
	P95     time.Duration `json:"p95_ns"`
	P99     time.Duration `json:"p99_ns"`
	Max     time.Duration `json:"max_ns"`
}

// Report is the full formatted output for one run.
type Report struct {
	RunID   string        `json:"run_id"`
	Backend string        `json:"backend"`
	Workers int           `json:"workers"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Stats   []KindStats   `json:"stats"`
}

// Build aggregates a run result into per-kind statistics, ordered by
// kind.
func Build(run *bench.RunResult) *Report {
	byKind := make(map[workload.Kind][]bench.Measurement)
	for _, m := range run.Measurements {
		byKind[m.Kind] = append(byKind[m.Kind], m)
	}

	kinds := make([]workload.Kind, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	rep := &Report{
		RunID:   run.RunID,
		Backend: run.Backend,
		Workers: run.Workers,
		Elapsed: run.Elapsed,
	}
	for _, k := range kinds {
		rep.Stats = append(rep.Stats, aggregate(k, byKind[k]))
	}

	return rep
}

func aggregate(kind workload.Kind, ms []bench.Measurement) KindStats {
	stats := KindStats{Kind: kind.String()}

	var latencies []time.Duration
	var sum time.Duration
	for _, m := range ms {
		switch {
		case m.Skipped:
			stats.Skipped++
			continue
		case m.Error != "" || m.RowErrors > 0:
			stats.Failed++
		}

		stats.Count++
		latencies = append(latencies, m.Latency)
		sum += m.Latency
	}

	if len(latencies) == 0 {
		return stats
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	stats.Min = latencies[0]
	stats.Max = latencies[len(latencies)-1]
	stats.Mean = sum / time.Duration(len(latencies))
	stats.P50 = percentile(latencies, 50)
	stats.P95 = percentile(latencies, 95)
	stats.P99 = percentile(latencies, 99)

	return stats
}

// percentile returns the nearest-rank percentile of sorted latencies.
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}

	return sorted[rank-1]
}

// WriteTable writes the report as a markdown comparison table.
func WriteTable(w io.Writer, rep *Report) error {
	if len(rep.Stats) == 0 {
		return fmt.Errorf("no measurements to report")
	}

	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run %s on %s, %d workers, %s total\n",
		rep.RunID, rep.Backend, rep.Workers, formatDuration(rep.Elapsed))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Operation | Count | Failed | Min | Mean | p50 | p95 | p99 | Max |")
	fmt.Fprintln(w, "|-----------|-------|--------|-----|------|-----|-----|-----|-----|")

	for _, s := range rep.Stats {
		fmt.Fprintf(w, "| %s | %d | %d | %s | %s | %s | %s | %s | %s |\n",
			s.Kind,
			s.Count,
			s.Failed,
			formatDuration(s.Min),
			formatDuration(s.Mean),
			formatDuration(s.P50),
			formatDuration(s.P95),
			formatDuration(s.P99),
			formatDuration(s.Max),
		)
	}

	skipped := 0
	for _, s := range rep.Stats {
		skipped += s.Skipped
	}
	if skipped > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%d operations skipped (no registered handler)\n", skipped)
	}

	return nil
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rep)
}

func formatDuration(d time.Duration) string {
	switch {
	case d == 0:
		return "-"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
