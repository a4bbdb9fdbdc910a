package codectext

import (
	"math/big"
	"strconv"
	"strings"
)

// ClassifyInt picks the narrowest exact representation of a decimal
// integer literal: int32, then int64, then big.Int. ok is false if the
// literal isn't a valid base-10 integer.
func ClassifyInt(literal string) (i32 int32, i64 int64, big_ *big.Int, kind IntKind, ok bool) {
	if v, err := strconv.ParseInt(literal, 10, 32); err == nil {
		return int32(v), 0, nil, IntIs32, true
	}
	if v, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return 0, v, nil, IntIs64, true
	}
	b, success := new(big.Int).SetString(literal, 10)
	if !success {
		return 0, 0, nil, IntIsInvalid, false
	}
	return 0, 0, b, IntIsBig, true
}

// IntKind reports which field ClassifyInt populated.
type IntKind int

const (
	IntIsInvalid IntKind = iota
	IntIs32
	IntIs64
	IntIsBig
)

// RoundTripsAsFloat64 reports whether literal, parsed as a float64 and
// reformatted with Go's shortest round-trip algorithm, reproduces the
// same value as literal once both are compared case-insensitively on
// the exponent marker (spec.md §4.C's "real path" rule for preferring
// float64 over big-decimal).
func RoundTripsAsFloat64(literal string, v float64) bool {
	got := strconv.FormatFloat(v, 'g', -1, 64)
	return strings.EqualFold(normalizeFloatLiteral(literal), normalizeFloatLiteral(got))
}

// normalizeFloatLiteral drops the '+' after the exponent marker and
// lower-cases the marker, so "1e+10", "1E10" and "1e10" compare equal;
// other spellings of one value (such as "1.0" against "1") still differ.
func normalizeFloatLiteral(s string) string {
	s = strings.Replace(s, "e+", "e", 1)
	s = strings.Replace(s, "E+", "e", 1)
	s = strings.Replace(s, "E", "e", 1)
	return s
}
