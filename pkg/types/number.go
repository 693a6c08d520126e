// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"math"
	"strconv"
)

// Number is a numeric field that may be missing. The zero value is Missing.
// A missing Number never satisfies a comparison, so rules keyed on it do not fire.
type Number struct {
	Value float64
	Valid bool
}

// Missing is the explicit "feature unavailable" marker.
var Missing = Number{}

// Num returns a present Number. NaN and infinities are treated as missing.
func Num(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	return Number{Value: v, Valid: true}
}

// GreaterThan reports whether n is present and strictly greater than x.
func (n Number) GreaterThan(x float64) bool {
	return n.Valid && n.Value > x
}

// LessThan reports whether n is present and strictly less than x.
func (n Number) LessThan(x float64) bool {
	return n.Valid && n.Value < x
}

// Between reports whether n is present and lo < n < hi.
func (n Number) Between(lo, hi float64) bool {
	return n.Valid && n.Value > lo && n.Value < hi
}

// Or returns the value, or fallback when missing.
func (n Number) Or(fallback float64) float64 {
	if !n.Valid {
		return fallback
	}
	return n.Value
}

func (n Number) String() string {
	if !n.Valid {
		return "-"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// MarshalJSON encodes a missing Number as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON accepts a number or null.
func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Missing
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Num(v)
	return nil
}

// MarshalYAML encodes a missing Number as null.
func (n Number) MarshalYAML() (interface{}, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Value, nil
}
