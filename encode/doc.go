// Package encode converts user values into ir value trees and
// materializes them as wire documents.
//
// # Overview
//
// A type opts into encoding by implementing Encodable: its EncodeBSON
// method receives an Encoder and requests containers from it. The
// encoder keeps a stack of containers in progress and a path locating
// the current encoding position; every nested field or element is
// boxed - converted to an ir value, recursively decomposing values
// that are themselves Encodable. Values that implement neither
// Encodable nor ir.Value fall back to the gomap reflection bridge.
//
// Each Encode call owns an independent Encoder, so there is no shared
// state across concurrent encodes. Containers and encoders must not
// be retained past the call that created them.
//
// # Containers
//
// Three container shapes exist per encoding position: keyed
// (KeyedContainer), ordered (OrderedContainer), and the scalar slot
// (EncodeScalar). The first request at a position decides the shape;
// requesting a different shape at the same position is a programming
// error and panics rather than returning an error.
//
// # Super encoders
//
// SuperEncoder returns a referencing encoder: an independent encoder
// whose finished value is spliced into a reserved key or index of the
// container that created it once Finalize runs. It exists for
// delegated encoding of embedded base types.
//
//	func (d Derived) EncodeBSON(e *encode.Encoder) error {
//		c := e.KeyedContainer()
//		if err := c.Encode("extra", d.Extra); err != nil {
//			return err
//		}
//		super := c.SuperEncoder("base")
//		defer super.Finalize()
//		return d.Base.EncodeBSON(&super.Encoder)
//	}
package encode
