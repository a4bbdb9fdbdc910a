package codectext

import (
	"math"
	"testing"
)

func TestClassifyInt(t *testing.T) {
	tests := []struct {
		literal  string
		wantKind IntKind
	}{
		{"0", IntIs32},
		{"2147483647", IntIs32},
		{"2147483648", IntIs64},
		{"-2147483649", IntIs64},
		{"9223372036854775807", IntIs64},
		{"9223372036854775808", IntIsBig},
		{"not-a-number", IntIsInvalid},
	}
	for _, tt := range tests {
		_, _, _, kind, ok := ClassifyInt(tt.literal)
		if kind != tt.wantKind {
			t.Errorf("ClassifyInt(%q) kind = %v, want %v", tt.literal, kind, tt.wantKind)
		}
		if ok != (tt.wantKind != IntIsInvalid) {
			t.Errorf("ClassifyInt(%q) ok = %v", tt.literal, ok)
		}
	}
}

func TestRoundTripsAsFloat64(t *testing.T) {
	if !RoundTripsAsFloat64("3.14", 3.14) {
		t.Error("3.14 should round-trip")
	}
	if !RoundTripsAsFloat64("1e10", math.Pow(10, 10)) {
		t.Error("1e10 should round-trip")
	}
	if RoundTripsAsFloat64("0.1000000000000000055511151231257827021181583404541015625", 0.1) {
		t.Error("a long exact-decimal expansion of 0.1 should not round-trip to the short form")
	}
}
