// Package wire implements the byte-level BSON document representation:
// length-prefixed, type-tagged sequences of key/value elements as
// described at https://bsonspec.org.
//
// The package exposes two services and nothing else:
//
//   - Buffer: append one typed value under a string key, then Finish
//     to obtain the framed document bytes.
//   - Iterator: walk the key/type/value triples of finished document
//     bytes with typed extraction per element.
//
// Higher layers (ir, encode) never touch raw bytes directly; they drive
// these two services.
package wire
