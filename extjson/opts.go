package extjson

type EncodeOption func(*EncState)

// Canonical selects canonical output: every number and every
// non-JSON type gets a $-keyed wrapper so kinds round-trip exactly.
func Canonical(v bool) EncodeOption {
	return func(es *EncState) { es.canonical = v }
}

// Indent sets the indentation width. Zero keeps output on one line.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
