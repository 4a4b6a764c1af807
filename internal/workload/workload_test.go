// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package workload

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Kind
		wantErr bool
	}{
		{name: "complex read", input: "complex_4", want: KindComplex4},
		{name: "short read", input: "short_2", want: KindShort2},
		{name: "update", input: "update_8", want: KindUpdate8},
		{name: "unknown", input: "complex_15", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ParseKind() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindNamesRoundTrip(t *testing.T) {
	for _, kind := range ComplexKinds() {
		parsed, err := ParseKind(kind.String())
		if err != nil {
			t.Fatalf("ParseKind(%q) error = %v", kind.String(), err)
		}
		if parsed != kind {
			t.Errorf("ParseKind(%q) = %v, want %v", kind.String(), parsed, kind)
		}
	}
}

func TestTemplateName(t *testing.T) {
	if got := KindComplex4.TemplateName(); got != "interactive-complex-4" {
		t.Errorf("TemplateName() = %q, want %q", got, "interactive-complex-4")
	}
	if got := KindComplex13.TemplateName(); got != "interactive-complex-13" {
		t.Errorf("TemplateName() = %q, want %q", got, "interactive-complex-13")
	}
}

func TestDecode(t *testing.T) {
	op, err := Decode([]byte(`{"kind":"complex_4","person_id":933,"start_date":1275350400000,"duration_days":2,"limit":10}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	c4, ok := op.(*Complex4)
	if !ok {
		t.Fatalf("Decode() = %T, want *Complex4", op)
	}
	if c4.PersonID != 933 || c4.DurationDays != 2 || c4.Limit != 10 {
		t.Errorf("Decode() = %+v", c4)
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := Decode([]byte(`{"kind":"complex_99","person_id":933}`))
	if err == nil {
		t.Fatal("Decode() error = nil, want unknown kind error")
	}
	if !strings.Contains(err.Error(), "complex_99") {
		t.Errorf("Decode() error = %v, want the kind named", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	ops := []Operation{
		&Complex1{PersonID: 933, FirstName: "Jan", Limit: 20},
		&Complex13{Person1ID: 933, Person2ID: 1129},
		&Complex14{Person1ID: 4398, Person2ID: 8796},
	}

	var buf bytes.Buffer
	if err := Write(&buf, ops); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := ReadAll(&buf)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !reflect.DeepEqual(got, ops) {
		t.Errorf("round trip = %+v, want %+v", got, ops)
	}
}

func TestSourceSkipsBlankLines(t *testing.T) {
	input := `{"kind":"complex_7","person_id":933,"limit":20}` + "\n\n" +
		`{"kind":"complex_8","person_id":1129,"limit":20}` + "\n"

	src := NewSource(strings.NewReader(input))

	first, err := src.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if first.Kind() != KindComplex7 {
		t.Errorf("first.Kind() = %v, want %v", first.Kind(), KindComplex7)
	}

	second, err := src.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if second.Kind() != KindComplex8 {
		t.Errorf("second.Kind() = %v, want %v", second.Kind(), KindComplex8)
	}

	if _, err := src.Next(); err != io.EOF {
		t.Errorf("Next() at end = %v, want io.EOF", err)
	}
}

func TestSourceReportsLineNumber(t *testing.T) {
	input := `{"kind":"complex_7","person_id":933,"limit":20}` + "\n" +
		`{"kind":"nope"}` + "\n"

	src := NewSource(strings.NewReader(input))
	if _, err := src.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	_, err := src.Next()
	if err == nil {
		t.Fatal("Next() error = nil, want decode error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Next() error = %v, want the line number", err)
	}
}

func TestGeneratorDeterminism(t *testing.T) {
	cfg := Config{Operations: 200, Persons: 10000, Seed: 42}

	var a, b bytes.Buffer
	sumA, err := NewGenerator(cfg).Generate(&a)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	sumB, err := NewGenerator(cfg).Generate(&b)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("same seed produced different workloads")
	}
	if !reflect.DeepEqual(sumA, sumB) {
		t.Errorf("summaries differ: %+v vs %+v", sumA, sumB)
	}
	if sumA.TotalOperations != 200 {
		t.Errorf("TotalOperations = %d, want 200", sumA.TotalOperations)
	}
}

func TestGeneratorOutputDecodes(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewGenerator(Config{Operations: 50, Persons: 100, Seed: 7}).Generate(&buf); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	ops, err := ReadAll(&buf)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(ops) != 50 {
		t.Fatalf("len(ops) = %d, want 50", len(ops))
	}
	for _, op := range ops {
		if op.Kind() < KindComplex1 || op.Kind() > KindComplex14 {
			t.Errorf("generated kind %v outside complex reads", op.Kind())
		}
	}
}
