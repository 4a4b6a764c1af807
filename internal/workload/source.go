// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package workload

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// factories maps wire kind names to fresh operation values for decoding.
var factories = map[string]func() Operation{
	"complex_1":  func() Operation { return new(Complex1) },
	"complex_2":  func() Operation { return new(Complex2) },
	"complex_3":  func() Operation { return new(Complex3) },
	"complex_4":  func() Operation { return new(Complex4) },
	"complex_5":  func() Operation { return new(Complex5) },
	"complex_6":  func() Operation { return new(Complex6) },
	"complex_7":  func() Operation { return new(Complex7) },
	"complex_8":  func() Operation { return new(Complex8) },
	"complex_9":  func() Operation { return new(Complex9) },
	"complex_10": func() Operation { return new(Complex10) },
	"complex_11": func() Operation { return new(Complex11) },
	"complex_12": func() Operation { return new(Complex12) },
	"complex_13": func() Operation { return new(Complex13) },
	"complex_14": func() Operation { return new(Complex14) },
	"short_1":    func() Operation { return new(Short1) },
	"short_2":    func() Operation { return new(Short2) },
	"short_3":    func() Operation { return new(Short3) },
	"short_4":    func() Operation { return new(Short4) },
	"short_5":    func() Operation { return new(Short5) },
	"short_6":    func() Operation { return new(Short6) },
	"short_7":    func() Operation { return new(Short7) },
	"update_1":   func() Operation { return new(Update1) },
	"update_2":   func() Operation { return new(Update2) },
	"update_3":   func() Operation { return new(Update3) },
	"update_4":   func() Operation { return new(Update4) },
	"update_5":   func() Operation { return new(Update5) },
	"update_6":   func() Operation { return new(Update6) },
	"update_7":   func() Operation { return new(Update7) },
	"update_8":   func() Operation { return new(Update8) },
}

// envelope carries the discriminant tag of one workload line.
type envelope struct {
	Kind string `json:"kind"`
}

// record wraps an operation with its tag for encoding.
type record struct {
	Kind string `json:"kind"`
	Op   Operation
}

// MarshalJSON flattens the operation fields next to the kind tag.
func (r record) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(r.Op)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	tag, err := json.Marshal(r.Kind)
	if err != nil {
		return nil, err
	}
	fields["kind"] = tag
	return json.Marshal(fields)
}

// Source streams operations from a JSONL workload. Each line is one
// operation object with a "kind" tag next to its parameters.
type Source struct {
	sc   *bufio.Scanner
	line int
}

// NewSource creates a Source reading from r.
func NewSource(r io.Reader) *Source {
	sc := bufio.NewScanner(r)
	// Long message contents can exceed the default scanner buffer.
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &Source{sc: sc}
}

// Decode parses one JSONL operation object.
func Decode(raw []byte) (Operation, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}

	mk, ok := factories[env.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown operation kind %q", env.Kind)
	}

	op := mk()
	if err := json.Unmarshal(raw, op); err != nil {
		return nil, fmt.Errorf("decode %s: %w", env.Kind, err)
	}

	return op, nil
}

// Next returns the next operation, or io.EOF when the stream ends.
func (s *Source) Next() (Operation, error) {
	for s.sc.Scan() {
		s.line++
		raw := s.sc.Bytes()
		if len(raw) == 0 {
			continue
		}

		op, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("workload line %d: %w", s.line, err)
		}

		return op, nil
	}

	if err := s.sc.Err(); err != nil {
		return nil, err
	}

	return nil, io.EOF
}

// ReadAll drains the source into a slice, for workloads small enough
// to hold in memory.
func ReadAll(r io.Reader) ([]Operation, error) {
	src := NewSource(r)

	var ops []Operation
	for {
		op, err := src.Next()
		if err == io.EOF {
			return ops, nil
		}
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
}

// Write encodes operations as JSONL to w.
func Write(w io.Writer, ops []Operation) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for _, op := range ops {
		if err := enc.Encode(record{Kind: op.Kind().String(), Op: op}); err != nil {
			return fmt.Errorf("encode %s: %w", op.Kind(), err)
		}
	}

	return nil
}
