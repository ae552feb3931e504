package tabular

import (
	"math"
	"strconv"
	"strings"
)

// NumericCoercer converts raw cells into numbers with deterministic rules.
// Coercion never fails: a cell that cannot be parsed becomes missing (nil),
// and the caller decides whether missing is droppable or tolerable.
type NumericCoercer struct{}

// NewNumericCoercer creates a coercer.
func NewNumericCoercer() NumericCoercer {
	return NumericCoercer{}
}

// Coerce parses a raw cell as a float, returning nil for missing or
// unparseable values. Thousands separators and parenthesized negatives are
// accepted; infinities and NaN are rejected as unparseable.
func (c NumericCoercer) Coerce(raw string) *float64 {
	cleanVal := strings.TrimSpace(raw)
	if cleanVal == "" || IsNoneLike(cleanVal) {
		return nil
	}

	// (123) -> -123
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSuffix(strings.TrimPrefix(cleanVal, "("), ")")
		isNegative = true
	}

	cleanVal = strings.ReplaceAll(cleanVal, ",", "")
	cleanVal = strings.TrimSpace(cleanVal)

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return nil
	}
	return &val
}

// noneLikeTokens are the literal spellings of "no value" seen in delivery
// exports, compared case-insensitively.
var noneLikeTokens = map[string]struct{}{
	"nan":  {},
	"none": {},
	"null": {},
	"na":   {},
	"n/a":  {},
	"-":    {},
}

// IsNoneLike reports whether a trimmed cell spells out a missing value.
func IsNoneLike(value string) bool {
	_, ok := noneLikeTokens[strings.ToLower(value)]
	return ok
}
