package encode

import (
	"fmt"

	"github.com/bson-format/go-bson/debug"
	"github.com/bson-format/go-bson/ir"
)

// Encodable is the contract a type implements to decompose itself:
// given an encoder, request zero or more containers and write fields
// or elements into them.
type Encodable interface {
	EncodeBSON(e *Encoder) error
}

// Encoder holds the state of one encode call: the stack of containers
// in progress and the path of the current encoding position. An
// Encoder is single-use and not safe for concurrent use; every
// top-level encode owns a fresh one.
type Encoder struct {
	stack []ir.Value
	path  []Segment
	saved [][]Segment

	// pending counts encoding positions that have been entered but
	// not yet filled. A new container or scalar may only be claimed
	// when every pending position up the chain already has its
	// container, i.e. when len(stack) == pending.
	pending int
}

// NewEncoder returns an empty encoder positioned at the document root.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Path returns the current encoding position as segments from the
// root.
func (e *Encoder) Path() []Segment {
	res := make([]Segment, len(e.path))
	copy(res, e.path)
	return res
}

// PathString renders the current encoding position.
func (e *Encoder) PathString() string {
	return PathString(e.path)
}

func (e *Encoder) canEncodeNewValue() bool {
	return len(e.stack) == e.pending
}

func (e *Encoder) push(v ir.Value) {
	e.stack = append(e.stack, v)
}

func (e *Encoder) pop() ir.Value {
	n := len(e.stack)
	v := e.stack[n-1]
	e.stack[n-1] = nil
	e.stack = e.stack[:n-1]
	return v
}

// enter moves the encoder to the child position base+seg. Every enter
// is paired with exit, on the error path too; container methods pair
// them with defer.
func (e *Encoder) enter(base []Segment, seg Segment) {
	e.saved = append(e.saved, e.path)
	p := make([]Segment, len(base), len(base)+1)
	copy(p, base)
	e.path = append(p, seg)
	e.pending++
}

func (e *Encoder) exit() {
	n := len(e.saved)
	e.path = e.saved[n-1]
	e.saved = e.saved[:n-1]
	e.pending--
}

// KeyedContainer returns the keyed container for the current
// position, allocating it on first request. The position must not
// already hold a container of another shape.
func (e *Encoder) KeyedContainer() *Keyed {
	if e.canEncodeNewValue() {
		doc := ir.NewDocument()
		e.push(doc)
		return &Keyed{enc: e, doc: doc, path: e.Path()}
	}
	doc, ok := e.stack[len(e.stack)-1].(*ir.Document)
	if !ok {
		panic(fmt.Sprintf(
			"encode: keyed container requested at %q, position already claimed as %s",
			e.PathString(), e.stack[len(e.stack)-1].Kind()))
	}
	return &Keyed{enc: e, doc: doc, path: e.Path()}
}

// OrderedContainer returns the ordered container for the current
// position, allocating it on first request. The position must not
// already hold a container of another shape.
func (e *Encoder) OrderedContainer() *Ordered {
	if e.canEncodeNewValue() {
		arr := ir.NewArray()
		e.push(arr)
		return &Ordered{enc: e, arr: arr, path: e.Path()}
	}
	arr, ok := e.stack[len(e.stack)-1].(*ir.Array)
	if !ok {
		panic(fmt.Sprintf(
			"encode: ordered container requested at %q, position already claimed as %s",
			e.PathString(), e.stack[len(e.stack)-1].Kind()))
	}
	return &Ordered{enc: e, arr: arr, path: e.Path()}
}

// EncodeScalar claims the current position as a single scalar slot
// and writes v into it. Claiming a position that already holds a
// value or container is a programming error.
func (e *Encoder) EncodeScalar(v any) error {
	if !e.canEncodeNewValue() {
		panic(fmt.Sprintf(
			"encode: scalar encoded at %q where a value was already encoded", e.PathString()))
	}
	node, err := e.box(v)
	if err != nil {
		return e.wrap(err)
	}
	if node == nil {
		node = ir.NewDocument()
	}
	if debug.Encode() {
		debug.Logf("encode: scalar %s at %q\n", node.Kind(), e.PathString())
	}
	e.push(node)
	return nil
}
