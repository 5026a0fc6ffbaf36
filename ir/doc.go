// Package ir provides the intermediate representation for BSON
// documents: a tree of typed value nodes covering the closed set of
// wire kinds.
//
// # Overview
//
// Every storable unit of a document is a Value. Scalars (Double,
// String, Int32, ...) are leaves; Document and Array are the two
// container shapes. A Value knows three things: its wire kind, how to
// append itself under a key to a wire.Buffer, and - through the read
// constructors in this package - how to build itself from a
// wire.Iterator positioned at an element of its kind. A value's kind
// tag always matches the kind it appends and reads; this is the one
// contract every variant upholds.
//
// # Containers
//
// Document is an insertion-ordered string-keyed mapping. Key order is
// significant and preserved; assigning an existing key overwrites in
// place at its original position; assigning nil removes the key. Array
// is a growable sequence supporting append and insert-at-index. Both
// are Values themselves, so trees nest arbitrarily.
//
// # Deprecated kinds
//
// Undefined, DBPointer, and Symbol exist only so decoded input can
// name them. They always fail to encode, and the uniform read path
// rejects them unless ReadDeprecatedAs conversion is requested, which
// re-expresses a dbPointer as a document and a symbol as a string.
//
// # Creating values
//
//	doc := ir.NewDocument()
//	doc.Set("name", ir.String("a"))
//	doc.Set("id", ir.Int32(42))
//	doc.Set("tags", ir.NewArray(ir.String("x"), ir.String("y")))
//	raw, err := doc.Encode()
package ir
