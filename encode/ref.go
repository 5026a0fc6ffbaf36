package encode

import (
	"fmt"

	"github.com/bson-format/go-bson/debug"
	"github.com/bson-format/go-bson/ir"
)

// RefEncoder is a referencing encoder: it owns an independent stack
// but logically continues the parent's path at the key or index
// reserved for it. The value encoded into it is not returned; it is
// spliced into the parent container when Finalize runs.
//
// Finalize must run before the parent container's contents are
// observed; callers defer it at the scope that created the encoder.
// It is idempotent, so a deferred Finalize after an explicit one is
// harmless.
type RefEncoder struct {
	Encoder

	spliceDoc *ir.Document
	spliceKey string

	spliceArr   *ir.Array
	spliceIndex int

	finalized bool
}

// Finalize splices the encoded value into the reserved position of
// the parent container. An encoder that received no writes splices an
// empty document. More than one finished value on the stack means the
// encoder was driven incorrectly and panics.
func (r *RefEncoder) Finalize() {
	if r.finalized {
		return
	}
	r.finalized = true
	var node ir.Value
	switch len(r.stack) {
	case 0:
		node = ir.NewDocument()
	case 1:
		node = r.stack[0]
	default:
		panic(fmt.Sprintf(
			"encode: referencing encoder at %q finalized with %d containers on stack",
			r.PathString(), len(r.stack)))
	}
	if debug.Encode() {
		debug.Logf("encode: splice %s at %q\n", node.Kind(), r.PathString())
	}
	if r.spliceDoc != nil {
		r.spliceDoc.Set(r.spliceKey, node)
		return
	}
	r.spliceArr.Insert(r.spliceIndex, node)
}
