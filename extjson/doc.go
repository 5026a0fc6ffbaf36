// Package extjson renders ir values as extended JSON and parses
// extended JSON back into ir values. Two output modes exist:
// canonical, which wraps every non-JSON type (and every number) in a
// $-keyed wrapper so the exact kind round-trips, and relaxed, which
// prints numbers and dates plainly when they fit. YAML output reuses
// the same value mapping through ordered map slices.
package extjson
