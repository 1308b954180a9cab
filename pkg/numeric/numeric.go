// Package numeric extracts optional numbers from loosely typed upstream payloads.
//
// Every helper returns either a finite value or nil. NaN and ±Inf never leave this package.
package numeric

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Extract converts v into a finite float64. Strings are trimmed and parsed, json.Number is parsed,
// Go numeric types are converted. Anything else (nil, bool, maps, unparseable strings, NaN, ±Inf) yields nil.
func Extract(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case json.Number:
		p, err := x.Float64()
		if err != nil {
			return nil
		}
		f = p
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = p
	case *float64:
		if x == nil {
			return nil
		}
		f = *x
	default:
		return nil
	}
	return Finite(f)
}

// Finite returns &f when f is a finite number, nil otherwise.
func Finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// First returns the first candidate that extracts to a finite number.
func First(candidates ...any) *float64 {
	for _, c := range candidates {
		if v := Extract(c); v != nil {
			return v
		}
	}
	return nil
}

// PctDiff returns (current - ref) / ref * 100. It is nil unless both operands are present,
// ref is non-zero and the result is finite.
func PctDiff(current, ref *float64) *float64 {
	if current == nil || ref == nil || *ref == 0 {
		return nil
	}
	return Finite((*current - *ref) / *ref * 100)
}

// Min returns the smallest present finite value, or nil when there is none.
func Min(values []*float64) *float64 {
	var out *float64
	for _, v := range values {
		if v == nil || Finite(*v) == nil {
			continue
		}
		if out == nil || *v < *out {
			x := *v
			out = &x
		}
	}
	return out
}

// Max returns the largest present finite value, or nil when there is none.
func Max(values []*float64) *float64 {
	var out *float64
	for _, v := range values {
		if v == nil || Finite(*v) == nil {
			continue
		}
		if out == nil || *v > *out {
			x := *v
			out = &x
		}
	}
	return out
}

// Ptr returns a pointer to f. Intended for literals in tests and fixtures.
func Ptr(f float64) *float64 { return &f }
