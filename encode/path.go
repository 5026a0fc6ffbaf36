package encode

import (
	"strconv"
	"strings"
)

// Segment is one step of an encoding path: an object key or an array
// index.
type Segment struct {
	key     string
	index   int
	indexed bool
}

// Key returns a key segment.
func Key(k string) Segment {
	return Segment{key: k}
}

// Index returns an index segment.
func Index(i int) Segment {
	return Segment{index: i, indexed: true}
}

func (s Segment) String() string {
	if s.indexed {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.key
}

// PathString renders segments as a dotted path with bracketed
// indices, e.g. "a.b[0]". The root path renders as "".
func PathString(segs []Segment) string {
	var sb strings.Builder
	for i, s := range segs {
		if i > 0 && !s.indexed {
			sb.WriteByte('.')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}
