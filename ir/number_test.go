package ir

import (
	"errors"
	"math"
	"testing"
)

func TestExactNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{name: "small int", in: int(42), want: Int32(42)},
		{name: "negative int", in: int(-7), want: Int32(-7)},
		{name: "int32 bounds", in: int64(math.MaxInt32), want: Int32(math.MaxInt32)},
		{name: "past int32", in: int64(math.MaxInt32) + 1, want: Int64(math.MaxInt32 + 1)},
		{name: "large int64", in: int64(9_999_999_999), want: Int64(9_999_999_999)},
		{name: "uint fits", in: uint16(9), want: Int32(9)},
		{name: "uint64 fits int64", in: uint64(math.MaxInt64), want: Int64(math.MaxInt64)},
		{name: "uint64 exact double", in: uint64(1) << 63, want: Double(9.223372036854776e18)},
		{name: "fractional", in: 1.5, want: Double(1.5)},
		{name: "integral float to int32", in: float64(12), want: Int32(12)},
		{name: "integral float to int64", in: float64(1 << 40), want: Int64(1 << 40)},
		{name: "huge integral float", in: 1e200, want: Double(1e200)},
		{name: "negative infinity", in: math.Inf(-1), want: Double(math.Inf(-1))},
		{name: "float32", in: float32(2.5), want: Double(2.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExactNumber(tt.in)
			if err != nil {
				t.Fatalf("ExactNumber(%v) error: %v", tt.in, err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("ExactNumber(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExactNumberFails(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{name: "NaN", in: math.NaN()},
		{name: "uint64 with low bits", in: uint64(math.MaxUint64)},
		{name: "not a number", in: "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExactNumber(tt.in)
			var ne *NumberError
			if !errors.As(err, &ne) {
				t.Fatalf("ExactNumber(%v) err = %v, want NumberError", tt.in, err)
			}
		})
	}
}

func TestNamedNumericTypes(t *testing.T) {
	type myInt int64
	type myFloat float64
	got, err := ExactNumber(myInt(3))
	if err != nil || !Equal(got, Int32(3)) {
		t.Errorf("ExactNumber(myInt) = %#v, %v", got, err)
	}
	got, err = ExactNumber(myFloat(0.25))
	if err != nil || !Equal(got, Double(0.25)) {
		t.Errorf("ExactNumber(myFloat) = %#v, %v", got, err)
	}
}

func TestIntAndUint(t *testing.T) {
	if got := Int(5); !Equal(got, Int32(5)) {
		t.Errorf("Int(5) = %#v", got)
	}
	if got := Int(1 << 40); !Equal(got, Int64(1<<40)) {
		t.Errorf("Int(1<<40) = %#v", got)
	}
	if got, err := Uint(7); err != nil || !Equal(got, Int32(7)) {
		t.Errorf("Uint(7) = %#v, %v", got, err)
	}
	if _, err := Uint(math.MaxUint64); err == nil {
		t.Error("Uint(MaxUint64) accepted a value past int64")
	}
}
