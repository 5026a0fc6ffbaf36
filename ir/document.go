package ir

import (
	"github.com/bson-format/go-bson/wire"
)

// Document is the keyed container shape: an insertion-ordered mapping
// from string keys to values. It is mutable while a tree is under
// construction and is itself a Value, so documents nest arbitrarily.
type Document struct {
	keys   []string
	values []Value
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

func (*Document) Kind() wire.Type { return wire.TypeDocument }

// Len returns the number of keys.
func (d *Document) Len() int {
	return len(d.keys)
}

// Keys returns the keys in insertion order.
func (d *Document) Keys() []string {
	res := make([]string, len(d.keys))
	copy(res, d.keys)
	return res
}

func (d *Document) index(key string) int {
	for i, k := range d.keys {
		if k == key {
			return i
		}
	}
	return -1
}

// Set assigns v under key. A duplicate key overwrites in place at its
// original position. Assigning nil removes the key.
func (d *Document) Set(key string, v Value) {
	i := d.index(key)
	if v == nil {
		if i >= 0 {
			d.remove(i)
		}
		return
	}
	if i >= 0 {
		d.values[i] = v
		return
	}
	d.keys = append(d.keys, key)
	d.values = append(d.values, v)
}

// Delete removes key, reporting whether it was present.
func (d *Document) Delete(key string) bool {
	i := d.index(key)
	if i < 0 {
		return false
	}
	d.remove(i)
	return true
}

func (d *Document) remove(i int) {
	d.keys = append(d.keys[:i], d.keys[i+1:]...)
	d.values = append(d.values[:i], d.values[i+1:]...)
}

// Lookup returns the value under key and whether it is present.
func (d *Document) Lookup(key string) (Value, bool) {
	i := d.index(key)
	if i < 0 {
		return nil, false
	}
	return d.values[i], true
}

// Get returns the value under key, or nil if absent.
func (d *Document) Get(key string) Value {
	v, _ := d.Lookup(key)
	return v
}

// At returns the key/value pair at insertion position i.
func (d *Document) At(i int) (string, Value) {
	return d.keys[i], d.values[i]
}

// Range calls f for each key/value pair in insertion order until f
// returns false.
func (d *Document) Range(f func(key string, v Value) bool) {
	for i := range d.keys {
		if !f(d.keys[i], d.values[i]) {
			return
		}
	}
}

// Encode materializes the document, key by key in insertion order,
// into framed wire bytes.
func (d *Document) Encode() ([]byte, error) {
	b := wire.NewBuffer()
	for i := range d.keys {
		if err := d.values[i].appendTo(b, d.keys[i]); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

func (d *Document) appendTo(b *wire.Buffer, key string) error {
	raw, err := d.Encode()
	if err != nil {
		return err
	}
	return b.AppendDocument(key, raw)
}
