package encode

import (
	"github.com/bson-format/go-bson/ir"
)

// Keyed writes string-keyed fields into a document under
// construction. Insertion order of keys is preserved; writing an
// existing key overwrites it in place.
type Keyed struct {
	enc  *Encoder
	doc  *ir.Document
	path []Segment
}

// Encode boxes v and assigns it under key.
func (k *Keyed) Encode(key string, v any) error {
	k.enc.enter(k.path, Key(key))
	defer k.enc.exit()
	node, err := k.enc.box(v)
	if err != nil {
		return k.enc.wrap(err)
	}
	if node == nil {
		node = ir.NewDocument()
	}
	k.doc.Set(key, node)
	return nil
}

// EncodeNil assigns an explicit null under key.
func (k *Keyed) EncodeNil(key string) {
	k.doc.Set(key, ir.Null{})
}

// Remove deletes key from the document.
func (k *Keyed) Remove(key string) {
	k.doc.Delete(key)
}

// NestedKeyed allocates a document under key and returns its
// container.
func (k *Keyed) NestedKeyed(key string) *Keyed {
	doc := ir.NewDocument()
	k.doc.Set(key, doc)
	return &Keyed{enc: k.enc, doc: doc, path: append(k.snapPath(), Key(key))}
}

// NestedOrdered allocates an array under key and returns its
// container.
func (k *Keyed) NestedOrdered(key string) *Ordered {
	arr := ir.NewArray()
	k.doc.Set(key, arr)
	return &Ordered{enc: k.enc, arr: arr, path: append(k.snapPath(), Key(key))}
}

// SuperEncoder reserves key for delegated encoding and returns the
// referencing encoder that will fill it on Finalize. The key's
// position is claimed now; keys written in between keep their
// relative order.
func (k *Keyed) SuperEncoder(key string) *RefEncoder {
	k.doc.Set(key, ir.NewDocument())
	r := &RefEncoder{spliceDoc: k.doc, spliceKey: key}
	r.path = append(k.snapPath(), Key(key))
	return r
}

func (k *Keyed) snapPath() []Segment {
	res := make([]Segment, len(k.path), len(k.path)+1)
	copy(res, k.path)
	return res
}

// Ordered writes sequential elements into an array under
// construction.
type Ordered struct {
	enc  *Encoder
	arr  *ir.Array
	path []Segment
}

// Len returns the number of elements written so far.
func (o *Ordered) Len() int {
	return o.arr.Len()
}

// Encode boxes v and appends it.
func (o *Ordered) Encode(v any) error {
	o.enc.enter(o.path, Index(o.arr.Len()))
	defer o.enc.exit()
	node, err := o.enc.box(v)
	if err != nil {
		return o.enc.wrap(err)
	}
	if node == nil {
		node = ir.NewDocument()
	}
	o.arr.Append(node)
	return nil
}

// EncodeNil appends an explicit null.
func (o *Ordered) EncodeNil() {
	o.arr.Append(ir.Null{})
}

// NestedKeyed appends a document and returns its container.
func (o *Ordered) NestedKeyed() *Keyed {
	doc := ir.NewDocument()
	idx := o.arr.Len()
	o.arr.Append(doc)
	return &Keyed{enc: o.enc, doc: doc, path: append(o.snapPath(), Index(idx))}
}

// NestedOrdered appends an array and returns its container.
func (o *Ordered) NestedOrdered() *Ordered {
	arr := ir.NewArray()
	idx := o.arr.Len()
	o.arr.Append(arr)
	return &Ordered{enc: o.enc, arr: arr, path: append(o.snapPath(), Index(idx))}
}

// SuperEncoder reserves the next index for delegated encoding and
// returns the referencing encoder that will splice into it on
// Finalize, shifting any elements appended in between.
func (o *Ordered) SuperEncoder() *RefEncoder {
	idx := o.arr.Len()
	r := &RefEncoder{spliceArr: o.arr, spliceIndex: idx}
	r.path = append(o.snapPath(), Index(idx))
	return r
}

func (o *Ordered) snapPath() []Segment {
	res := make([]Segment, len(o.path), len(o.path)+1)
	copy(res, o.path)
	return res
}
