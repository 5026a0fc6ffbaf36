package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// GetPath navigates a value tree using a dotted path with bracketed
// array indices, e.g. "a.b[0].c". An empty path returns v itself.
// Absent fields and out of range indices yield a nil value with no
// error; errors report shape mismatches only.
func GetPath(v Value, path string) (Value, error) {
	if path == "" {
		return v, nil
	}
	res := v
	for _, seg := range splitPath(path) {
		if strings.HasPrefix(seg, "[") {
			arr, ok := res.(*Array)
			if !ok {
				return nil, fmt.Errorf("path %q: expected array, got %s", path, res.Kind())
			}
			idx, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(seg, "["), "]"))
			if err != nil {
				return nil, fmt.Errorf("path %q: bad index %q", path, seg)
			}
			if idx < 0 || idx >= arr.Len() {
				return nil, nil
			}
			res = arr.At(idx)
			continue
		}
		doc, ok := res.(*Document)
		if !ok {
			return nil, fmt.Errorf("path %q: expected document, got %s", path, res.Kind())
		}
		next, ok := doc.Lookup(seg)
		if !ok {
			return nil, nil
		}
		res = next
	}
	return res, nil
}

// splitPath breaks "a.b[0].c" into ["a", "b", "[0]", "c"].
func splitPath(path string) []string {
	var segs []string
	cur := strings.Builder{}
	flush := func() {
		if cur.Len() > 0 {
			segs = append(segs, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '.':
			flush()
		case '[':
			flush()
			j := strings.IndexByte(path[i:], ']')
			if j < 0 {
				cur.WriteString(path[i:])
				i = len(path)
				break
			}
			segs = append(segs, path[i:i+j+1])
			i += j
		default:
			cur.WriteByte(path[i])
		}
	}
	flush()
	return segs
}
