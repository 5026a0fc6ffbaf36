package ir

import (
	"math"
	"reflect"
)

// ExactNumber converts any fixed-width integer or floating point
// value to the narrowest of Int32, Int64, or Double that represents
// it with zero loss. Exactness is defined by round-trip equality, so
// NaN - which compares unequal to itself - has no exact form and
// fails, as does any value exceeding all three representations.
func ExactNumber(v any) (Value, error) {
	switch n := v.(type) {
	case int:
		return exactInt(int64(n)), nil
	case int8:
		return Int32(n), nil
	case int16:
		return Int32(n), nil
	case int32:
		return Int32(n), nil
	case int64:
		return exactInt(n), nil
	case uint8:
		return Int32(n), nil
	case uint16:
		return Int32(n), nil
	case uint32:
		return exactInt(int64(n)), nil
	case uint:
		return exactUint(uint64(n), v)
	case uint64:
		return exactUint(n, v)
	case float32:
		return exactFloat(float64(n), v)
	case float64:
		return exactFloat(n, v)
	}
	// named numeric types reach here
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return exactInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return exactUint(rv.Uint(), v)
	case reflect.Float32, reflect.Float64:
		return exactFloat(rv.Float(), v)
	}
	return nil, &NumberError{Value: v}
}

// Int converts a default-width integer: Int32 when the value fits,
// Int64 otherwise.
func Int(v int64) Value {
	return exactInt(v)
}

// Uint converts an unsigned default-width integer: Int32 when it
// fits, then Int64; values above the int64 range have no default
// integer form and fail.
func Uint(v uint64) (Value, error) {
	if v > math.MaxInt64 {
		return nil, &NumberError{Value: v}
	}
	return exactInt(int64(v)), nil
}

func exactInt(v int64) Value {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return Int32(v)
	}
	return Int64(v)
}

func exactUint(v uint64, orig any) (Value, error) {
	if v <= math.MaxInt64 {
		return exactInt(int64(v)), nil
	}
	if f := float64(v); f < 1<<64 && uint64(f) == v {
		return Double(f), nil
	}
	return nil, &NumberError{Value: orig}
}

func exactFloat(f float64, orig any) (Value, error) {
	if f != f {
		// NaN: no representation compares equal to the input
		return nil, &NumberError{Value: orig}
	}
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		if f >= math.MinInt32 && f <= math.MaxInt32 {
			return Int32(f), nil
		}
		if f >= -(1 << 63) && f < 1<<63 {
			// integral doubles in int64 range convert exactly
			return Int64(f), nil
		}
	}
	return Double(f), nil
}
