// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package graph

import "math"

// Props holds node and edge properties. Values round-trip through JSON, so
// numbers may surface as float64 after a read; the typed accessors below
// absorb that.
type Props map[string]any

// SortLast is the position assigned to malformed or missing ordering
// values so they sort after every well-formed position, per the collation
// failure policy: never throw, sort last.
const SortLast = math.MaxInt32

// String returns the string value under key, or "" when absent or not a string.
func (p Props) String(key string) string {
	if p == nil {
		return ""
	}
	s, _ := p[key].(string)
	return s
}

// Int returns the integer value under key and whether it was well-formed.
func (p Props) Int(key string) (int, bool) {
	if p == nil {
		return 0, false
	}
	switch v := p[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		// JSON round-trip; accept only integral values.
		if v == math.Trunc(v) {
			return int(v), true
		}
	}
	return 0, false
}

// IntOrZero returns the integer value under key, or 0 when absent or
// malformed. Used for optional scalar fields like a material's year.
func (p Props) IntOrZero(key string) int {
	v, _ := p.Int(key)
	return v
}

// Position returns the ordering value under key, or [SortLast] when the
// value is missing or malformed.
func (p Props) Position(key string) int {
	if v, ok := p.Int(key); ok {
		return v
	}
	return SortLast
}

// Bool returns the boolean value under key, defaulting to false.
func (p Props) Bool(key string) bool {
	if p == nil {
		return false
	}
	b, _ := p[key].(bool)
	return b
}

// Maps returns the value under key as a slice of nested property maps.
// Entries of any other shape are skipped.
func (p Props) Maps(key string) []Props {
	if p == nil {
		return nil
	}
	raw, _ := p[key].([]any)
	var out []Props
	for _, item := range raw {
		switch m := item.(type) {
		case map[string]any:
			out = append(out, Props(m))
		case Props:
			out = append(out, m)
		}
	}
	return out
}

// Clone returns a shallow copy. Used by the memory store so callers cannot
// mutate stored state through returned references.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
