package ir

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/bson-format/go-bson/wire"
)

// Decimal128 is an IEEE 754-2008 decimal128 value in binary integer
// decimal (BID) encoding, held as two opaque 64-bit halves.
type Decimal128 struct {
	h, l uint64
}

const (
	decimalExpBias = 6176
	decimalExpMax  = 6111
	decimalExpMin  = -6176
	decimalMaxDigits = 34
)

// NewDecimal128 builds a value from its high and low halves.
func NewDecimal128(high, low uint64) Decimal128 {
	return Decimal128{h: high, l: low}
}

// GetBytes returns the high and low halves.
func (d Decimal128) GetBytes() (high, low uint64) {
	return d.h, d.l
}

func (Decimal128) Kind() wire.Type { return wire.TypeDecimal128 }

func (d Decimal128) appendTo(b *wire.Buffer, key string) error {
	return b.AppendDecimal128(key, d.h, d.l)
}

// IsNaN reports whether d is not a number.
func (d Decimal128) IsNaN() bool {
	return d.h>>58&0x1F == 0x1F
}

// IsInf reports whether d is an infinity: +1 for positive, -1 for
// negative, 0 for finite values.
func (d Decimal128) IsInf() int {
	if d.h>>58&0x1F != 0x1E {
		return 0
	}
	if d.h>>63 == 1 {
		return -1
	}
	return 1
}

// String renders d per the decimal128 to-string algorithm: plain
// notation where the adjusted exponent lies in [-6, 0], scientific
// notation otherwise.
func (d Decimal128) String() string {
	var sb strings.Builder
	if d.h>>63 == 1 {
		sb.WriteByte('-')
	}
	h := d.h & (1<<63 - 1)
	switch {
	case h>>58 == 0x1F:
		return "NaN"
	case h>>58 == 0x1E:
		sb.WriteString("Infinity")
		return sb.String()
	}

	var exp int
	var sigHigh, sigLow uint64
	if h>>61 == 0x3 {
		// 11 combination prefix: the implicit significand prefix
		// exceeds 34 digits, a non-canonical encoding with value 0.
		exp = int(h>>47&0x3FFF) - decimalExpBias
	} else {
		exp = int(h>>49&0x3FFF) - decimalExpBias
		sigHigh = h & (1<<49 - 1)
		sigLow = d.l
	}

	bi := new(big.Int).SetUint64(sigHigh)
	bi.Lsh(bi, 64)
	bi.Or(bi, new(big.Int).SetUint64(sigLow))
	digits := bi.String()

	adjusted := exp + len(digits) - 1
	if exp <= 0 && adjusted >= -6 {
		// plain notation
		if exp == 0 {
			sb.WriteString(digits)
		} else if len(digits) > -exp {
			sb.WriteString(digits[:len(digits)+exp])
			sb.WriteByte('.')
			sb.WriteString(digits[len(digits)+exp:])
		} else {
			sb.WriteString("0.")
			sb.WriteString(strings.Repeat("0", -exp-len(digits)))
			sb.WriteString(digits)
		}
		return sb.String()
	}

	// scientific notation
	sb.WriteByte(digits[0])
	if len(digits) > 1 {
		sb.WriteByte('.')
		sb.WriteString(digits[1:])
	}
	sb.WriteByte('E')
	if adjusted >= 0 {
		sb.WriteByte('+')
	}
	sb.WriteString(strconv.Itoa(adjusted))
	return sb.String()
}

var decimalMaxSig = func() *big.Int {
	// 10^34 - 1
	bi := new(big.Int).Exp(big.NewInt(10), big.NewInt(decimalMaxDigits), nil)
	return bi.Sub(bi, big.NewInt(1))
}()

// ParseDecimal128 parses the string forms produced by String:
// optional sign, NaN, Infinity/Inf, and decimal notation with an
// optional E exponent.
func ParseDecimal128(s string) (Decimal128, error) {
	orig := s
	var neg bool
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	switch strings.ToLower(s) {
	case "nan":
		return NewDecimal128(0x1F<<58, 0), nil
	case "inf", "infinity":
		h := uint64(0x1E) << 58
		if neg {
			h |= 1 << 63
		}
		return NewDecimal128(h, 0), nil
	}

	mant := s
	exp := 0
	if i := strings.IndexAny(s, "Ee"); i >= 0 {
		mant = s[:i]
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Decimal128{}, fmt.Errorf("parse decimal128 %q: bad exponent: %w", orig, err)
		}
		exp = e
	}
	if mant == "" {
		return Decimal128{}, fmt.Errorf("parse decimal128 %q: empty significand", orig)
	}
	if i := strings.IndexByte(mant, '.'); i >= 0 {
		frac := mant[i+1:]
		mant = mant[:i] + frac
		exp -= len(frac)
	}
	for _, c := range mant {
		if c < '0' || c > '9' {
			return Decimal128{}, fmt.Errorf("parse decimal128 %q: bad digit %q", orig, c)
		}
	}
	mant = strings.TrimLeft(mant, "0")
	if mant == "" {
		// zero: clamp the exponent into range
		if exp > decimalExpMax {
			exp = decimalExpMax
		}
		if exp < decimalExpMin {
			exp = decimalExpMin
		}
		h := uint64(exp+decimalExpBias) << 49
		if neg {
			h |= 1 << 63
		}
		return NewDecimal128(h, 0), nil
	}

	// absorb an over-large exponent by padding zero digits
	for exp > decimalExpMax && len(mant) < decimalMaxDigits {
		mant += "0"
		exp--
	}
	if exp > decimalExpMax || exp < decimalExpMin {
		return Decimal128{}, fmt.Errorf("parse decimal128 %q: exponent out of range", orig)
	}
	if len(mant) > decimalMaxDigits {
		return Decimal128{}, fmt.Errorf("parse decimal128 %q: more than %d significant digits", orig, decimalMaxDigits)
	}

	bi, ok := new(big.Int).SetString(mant, 10)
	if !ok || bi.Cmp(decimalMaxSig) > 0 {
		return Decimal128{}, fmt.Errorf("parse decimal128 %q: significand out of range", orig)
	}
	mask64 := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(bi, mask64).Uint64()
	hi := new(big.Int).Rsh(bi, 64).Uint64()
	h := hi | uint64(exp+decimalExpBias)<<49
	if neg {
		h |= 1 << 63
	}
	return NewDecimal128(h, lo), nil
}
