package ir

import (
	"testing"
)

func TestDecimal128StringRoundTrip(t *testing.T) {
	tests := []string{
		"0",
		"1",
		"-1",
		"1.5",
		"-1.5",
		"123.456",
		"0.001",
		"1E+6",
		"1.234E-8",
		"NaN",
		"Infinity",
		"-Infinity",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			d, err := ParseDecimal128(s)
			if err != nil {
				t.Fatalf("ParseDecimal128(%q) error: %v", s, err)
			}
			if got := d.String(); got != s {
				t.Errorf("ParseDecimal128(%q).String() = %q", s, got)
			}
		})
	}
}

func TestDecimal128Bits(t *testing.T) {
	// 42 with exponent bias 6176: high word 0x3040000000000000
	d, err := ParseDecimal128("42")
	if err != nil {
		t.Fatal(err)
	}
	h, l := d.GetBytes()
	if h != 0x3040000000000000 || l != 42 {
		t.Errorf("GetBytes() = %#x, %#x", h, l)
	}
}

func TestDecimal128Specials(t *testing.T) {
	nan, _ := ParseDecimal128("NaN")
	if !nan.IsNaN() {
		t.Error("NaN.IsNaN() = false")
	}
	inf, _ := ParseDecimal128("Infinity")
	if inf.IsInf() != 1 {
		t.Errorf("Infinity.IsInf() = %d", inf.IsInf())
	}
	ninf, _ := ParseDecimal128("-Infinity")
	if ninf.IsInf() != -1 {
		t.Errorf("-Infinity.IsInf() = %d", ninf.IsInf())
	}
	n, _ := ParseDecimal128("3.14")
	if n.IsNaN() || n.IsInf() != 0 {
		t.Error("finite value reported as special")
	}
}

func TestParseDecimal128Rejects(t *testing.T) {
	tests := []string{
		"",
		"abc",
		"1.2.3",
		"1E",
		"12345678901234567890123456789012345", // 35 digits
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			if _, err := ParseDecimal128(s); err == nil {
				t.Errorf("ParseDecimal128(%q) accepted bad input", s)
			}
		})
	}
}
