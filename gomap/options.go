package gomap

import "github.com/bson-format/go-bson/ir"

// Resolver gets first refusal on every value the reflection walk
// encounters. Returning handled=false passes the value back to the
// default conversion.
type Resolver func(v any) (node ir.Value, handled bool, err error)

type options struct {
	resolver Resolver
}

// Option configures a conversion.
type Option func(*options)

// WithResolver installs r ahead of the default conversion rules.
func WithResolver(r Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
