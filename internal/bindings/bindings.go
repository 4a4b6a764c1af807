// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package bindings converts named fields of a backend result row into
// typed scalars and lists. Backends differ in what they hand back for a
// column: the SPARQL protocol yields lexical strings, pgx and the neo4j
// driver yield native Go values. The coercion functions here accept all
// of those representations and fail with a typed error otherwise.
//
// All functions are pure; a Row is never modified.
package bindings

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Row is one tabular result row: field name to backend-native value.
// Its lifetime is scoped to a single conversion call.
type Row map[string]any

// MissingFieldError reports a field name absent from the row.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("result row has no field %q", e.Field)
}

// TypeMismatchError reports a field present but not convertible to the
// requested type.
type TypeMismatchError struct {
	Field string
	Want  string
	Value any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q: cannot convert %T (%v) to %s", e.Field, e.Value, e.Value, e.Want)
}

// DateParseError reports a date literal that does not match any
// accepted lexical form.
type DateParseError struct {
	Field   string
	Literal string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("field %q: cannot parse date literal %q", e.Field, e.Literal)
}

// Accepted lexical date forms: the date and dateTime literals the
// benchmark dataset uses, plus RFC 3339 for backends that normalize.
var dateLayouts = []string{
	"2006-01-02T15:04:05.000-07:00",
	"2006-01-02T15:04:05.000Z",
	time.RFC3339,
	"2006-01-02",
}

// ListSeparator joins multi-valued fields encoded as a single literal
// (e.g. SPARQL GROUP_CONCAT output).
const ListSeparator = ";"

func lookup(row Row, field string) (any, error) {
	v, ok := row[field]
	if !ok {
		return nil, &MissingFieldError{Field: field}
	}
	return v, nil
}

// Long converts the named field to int64.
func Long(row Row, field string) (int64, error) {
	v, err := lookup(row, field)
	if err != nil {
		return 0, err
	}

	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, &TypeMismatchError{Field: field, Want: "long", Value: v}
		}
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, &TypeMismatchError{Field: field, Want: "long", Value: v}
		}
		return int64(n), nil
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, &TypeMismatchError{Field: field, Want: "long", Value: v}
		}
		return parsed, nil
	default:
		return 0, &TypeMismatchError{Field: field, Want: "long", Value: v}
	}
}

// Integer converts the named field to int32.
func Integer(row Row, field string) (int32, error) {
	n, err := Long(row, field)
	if err != nil {
		var mismatch *TypeMismatchError
		if errors.As(err, &mismatch) {
			mismatch.Want = "integer"
		}
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, &TypeMismatchError{Field: field, Want: "integer", Value: n}
	}
	return int32(n), nil
}

// Double converts the named field to float64.
func Double(row Row, field string) (float64, error) {
	v, err := lookup(row, field)
	if err != nil {
		return 0, err
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, &TypeMismatchError{Field: field, Want: "double", Value: v}
		}
		return parsed, nil
	default:
		return 0, &TypeMismatchError{Field: field, Want: "double", Value: v}
	}
}

// Bool converts the named field to bool.
func Bool(row Row, field string) (bool, error) {
	v, err := lookup(row, field)
	if err != nil {
		return false, err
	}

	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.TrimSpace(b) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return false, &TypeMismatchError{Field: field, Want: "boolean", Value: v}
	case int64:
		return b != 0, nil
	default:
		return false, &TypeMismatchError{Field: field, Want: "boolean", Value: v}
	}
}

// String returns the textual value of the named field verbatim.
func String(row Row, field string) (string, error) {
	v, err := lookup(row, field)
	if err != nil {
		return "", err
	}

	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", &TypeMismatchError{Field: field, Want: "string", Value: v}
	}
}

// Date converts the named field to epoch milliseconds. Accepts native
// time values, integral epoch-millisecond values, and the lexical date
// forms the dataset uses.
func Date(row Row, field string) (int64, error) {
	v, err := lookup(row, field)
	if err != nil {
		return 0, err
	}

	switch d := v.(type) {
	case time.Time:
		return d.UnixMilli(), nil
	case int64:
		return d, nil
	case string:
		lit := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, lit); err == nil {
				return t.UnixMilli(), nil
			}
		}
		return 0, &DateParseError{Field: field, Literal: d}
	default:
		return 0, &TypeMismatchError{Field: field, Want: "date", Value: v}
	}
}

// StringList converts the named field to an ordered string slice. An
// empty encoding yields an empty slice, not an error.
func StringList(row Row, field string) ([]string, error) {
	v, err := lookup(row, field)
	if err != nil {
		return nil, err
	}

	switch l := v.(type) {
	case []string:
		return l, nil
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeMismatchError{Field: field, Want: "string list", Value: item}
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		if l == "" {
			return []string{}, nil
		}
		return strings.Split(l, ListSeparator), nil
	case nil:
		return []string{}, nil
	default:
		return nil, &TypeMismatchError{Field: field, Want: "string list", Value: v}
	}
}

// LongList converts the named field to an ordered int64 slice. An
// empty encoding yields an empty slice, not an error.
func LongList(row Row, field string) ([]int64, error) {
	v, err := lookup(row, field)
	if err != nil {
		return nil, err
	}

	switch l := v.(type) {
	case []int64:
		return l, nil
	case []any:
		out := make([]int64, 0, len(l))
		for i, item := range l {
			n, err := Long(Row{field: item}, field)
			if err != nil {
				return nil, &TypeMismatchError{Field: field, Want: "long list", Value: l[i]}
			}
			out = append(out, n)
		}
		return out, nil
	case string:
		if l == "" {
			return []int64{}, nil
		}
		parts := strings.Split(l, ListSeparator)
		out := make([]int64, 0, len(parts))
		for _, part := range parts {
			n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, &TypeMismatchError{Field: field, Want: "long list", Value: v}
			}
			out = append(out, n)
		}
		return out, nil
	case nil:
		return []int64{}, nil
	default:
		return nil, &TypeMismatchError{Field: field, Want: "long list", Value: v}
	}
}
