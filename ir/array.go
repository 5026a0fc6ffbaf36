package ir

import (
	"strconv"

	"github.com/bson-format/go-bson/wire"
)

// Array is the ordered container shape: a growable sequence of values.
// Like Document it is mutable during construction and is itself a
// Value.
type Array struct {
	values []Value
}

// NewArray returns an array holding vs.
func NewArray(vs ...Value) *Array {
	return &Array{values: vs}
}

func (*Array) Kind() wire.Type { return wire.TypeArray }

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.values)
}

// At returns the element at index i.
func (a *Array) At(i int) Value {
	return a.values[i]
}

// Append adds vs at the end.
func (a *Array) Append(vs ...Value) {
	a.values = append(a.values, vs...)
}

// Insert places v at index i, shifting subsequent elements. i may
// equal Len, in which case Insert is an append.
func (a *Array) Insert(i int, v Value) {
	a.values = append(a.values, nil)
	copy(a.values[i+1:], a.values[i:])
	a.values[i] = v
}

// Values returns the elements in order.
func (a *Array) Values() []Value {
	res := make([]Value, len(a.values))
	copy(res, a.values)
	return res
}

// Encode materializes the array into framed wire bytes with decimal
// index keys.
func (a *Array) Encode() ([]byte, error) {
	b := wire.NewBuffer()
	for i, v := range a.values {
		if err := v.appendTo(b, strconv.Itoa(i)); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

func (a *Array) appendTo(b *wire.Buffer, key string) error {
	raw, err := a.Encode()
	if err != nil {
		return err
	}
	return b.AppendArray(key, raw)
}
