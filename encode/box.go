package encode

import (
	"fmt"
	"time"

	"github.com/bson-format/go-bson/debug"
	"github.com/bson-format/go-bson/gomap"
	"github.com/bson-format/go-bson/ir"
	"github.com/bson-format/go-bson/wire"
)

// box converts a user value into an ir value. Values that already are
// ir values short-circuit with no container bookkeeping; Encodable
// values decompose against this encoder; plain Go values go through
// the numeric policy and the gomap reflection bridge.
//
// A nil result with nil error means the value encoded nothing at all;
// callers decide whether that is an empty document (containers,
// referencing encoders) or an error (the top level).
func (e *Encoder) box(v any) (ir.Value, error) {
	switch t := v.(type) {
	case nil:
		return ir.Null{}, nil
	case *Keyed, *Ordered, *Encoder, *RefEncoder:
		// an intermediate container is not a value
		panic(fmt.Sprintf("encode: %T passed as a value to encode", v))
	case ir.Value:
		return t, nil
	case []ir.Value:
		return ir.NewArray(t...), nil
	case Encodable:
		return e.boxEncodable(t)
	case string:
		return ir.String(t), nil
	case bool:
		return ir.Boolean(t), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return ir.ExactNumber(t)
	case time.Time:
		return ir.FromTime(t), nil
	case []byte:
		return ir.Binary{Subtype: wire.BinaryGeneric, Data: t}, nil
	}
	return gomap.ToIR(v, gomap.WithResolver(e.resolve))
}

// boxEncodable lets v decompose itself against this encoder and pops
// the one node it produced. The stack is restored exactly on failure:
// a partially built container never leaks to the caller.
func (e *Encoder) boxEncodable(v Encodable) (ir.Value, error) {
	depth := len(e.stack)
	if debug.Encode() {
		debug.Logf("encode: box %T at %q depth %d\n", v, e.PathString(), depth)
	}
	if err := v.EncodeBSON(e); err != nil {
		if len(e.stack) > depth {
			e.stack = e.stack[:depth]
		}
		return nil, err
	}
	if len(e.stack) == depth {
		// the value encoded nothing
		return nil, nil
	}
	return e.pop(), nil
}

// resolve is the hook handed to the gomap bridge so reflected
// sub-values still honor ir short-circuits, Encodable decomposition,
// and the exact numeric policy.
func (e *Encoder) resolve(v any) (ir.Value, bool, error) {
	switch v.(type) {
	case ir.Value, []ir.Value, Encodable, time.Time, []byte:
		node, err := e.box(v)
		if err != nil {
			return nil, true, err
		}
		if node == nil {
			node = ir.NewDocument()
		}
		return node, true, nil
	}
	return nil, false, nil
}
