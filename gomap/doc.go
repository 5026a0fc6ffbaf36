// Package gomap converts between plain Go values and ir values by
// reflection. It is the fallback behind the encode package: values
// that do not implement Encodable and are not ir values end up here.
//
// Struct fields map in declaration order under their `bson` tags,
// string-keyed maps map in sorted key order, and numeric values take
// the narrowest exact representation. A Resolver installed with
// WithResolver gets first refusal on every sub-value, which is how
// the encode package keeps Encodable decomposition working inside
// reflected structs.
package gomap
