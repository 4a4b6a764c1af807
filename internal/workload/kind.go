// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package workload defines the benchmark operation set and provides
// JSONL workload decoding plus a deterministic seeded generator for
// smoke workloads. Operations are immutable request descriptors; the
// adapter layer never mutates them.
package workload

import "fmt"

// Kind identifies one benchmark operation type.
type Kind uint8

// The interactive workload operation kinds. Complex reads 1-14 are the
// queries current backends execute; short reads and updates exist so
// workload files carrying them decode cleanly, but no backend registers
// handlers for them yet.
const (
	KindUnknown Kind = iota

	KindComplex1
	KindComplex2
	KindComplex3
	KindComplex4
	KindComplex5
	KindComplex6
	KindComplex7
	KindComplex8
	KindComplex9
	KindComplex10
	KindComplex11
	KindComplex12
	KindComplex13
	KindComplex14

	KindShort1
	KindShort2
	KindShort3
	KindShort4
	KindShort5
	KindShort6
	KindShort7

	KindUpdate1
	KindUpdate2
	KindUpdate3
	KindUpdate4
	KindUpdate5
	KindUpdate6
	KindUpdate7
	KindUpdate8
)

var kindNames = map[Kind]string{
	KindComplex1:  "complex_1",
	KindComplex2:  "complex_2",
	KindComplex3:  "complex_3",
	KindComplex4:  "complex_4",
	KindComplex5:  "complex_5",
	KindComplex6:  "complex_6",
	KindComplex7:  "complex_7",
	KindComplex8:  "complex_8",
	KindComplex9:  "complex_9",
	KindComplex10: "complex_10",
	KindComplex11: "complex_11",
	KindComplex12: "complex_12",
	KindComplex13: "complex_13",
	KindComplex14: "complex_14",
	KindShort1:    "short_1",
	KindShort2:    "short_2",
	KindShort3:    "short_3",
	KindShort4:    "short_4",
	KindShort5:    "short_5",
	KindShort6:    "short_6",
	KindShort7:    "short_7",
	KindUpdate1:   "update_1",
	KindUpdate2:   "update_2",
	KindUpdate3:   "update_3",
	KindUpdate4:   "update_4",
	KindUpdate5:   "update_5",
	KindUpdate6:   "update_6",
	KindUpdate7:   "update_7",
	KindUpdate8:   "update_8",
}

var kindTemplates = map[Kind]string{
	KindComplex1:  "interactive-complex-1",
	KindComplex2:  "interactive-complex-2",
	KindComplex3:  "interactive-complex-3",
	KindComplex4:  "interactive-complex-4",
	KindComplex5:  "interactive-complex-5",
	KindComplex6:  "interactive-complex-6",
	KindComplex7:  "interactive-complex-7",
	KindComplex8:  "interactive-complex-8",
	KindComplex9:  "interactive-complex-9",
	KindComplex10: "interactive-complex-10",
	KindComplex11: "interactive-complex-11",
	KindComplex12: "interactive-complex-12",
	KindComplex13: "interactive-complex-13",
	KindComplex14: "interactive-complex-14",
	KindShort1:    "interactive-short-1",
	KindShort2:    "interactive-short-2",
	KindShort3:    "interactive-short-3",
	KindShort4:    "interactive-short-4",
	KindShort5:    "interactive-short-5",
	KindShort6:    "interactive-short-6",
	KindShort7:    "interactive-short-7",
	KindUpdate1:   "interactive-update-1",
	KindUpdate2:   "interactive-update-2",
	KindUpdate3:   "interactive-update-3",
	KindUpdate4:   "interactive-update-4",
	KindUpdate5:   "interactive-update-5",
	KindUpdate6:   "interactive-update-6",
	KindUpdate7:   "interactive-update-7",
	KindUpdate8:   "interactive-update-8",
}

// String returns the wire name used in workload files, e.g. "complex_4".
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// TemplateName returns the query template base name for this kind
// (the file name in a template directory, minus extension).
func (k Kind) TemplateName() string {
	return kindTemplates[k]
}

// ParseKind resolves a wire name back to its Kind. Unknown names
// return KindUnknown and an error.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown operation kind %q", s)
}

// ComplexKinds lists the complex read kinds in query order.
func ComplexKinds() []Kind {
	kinds := make([]Kind, 0, 14)
	for k := KindComplex1; k <= KindComplex14; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
