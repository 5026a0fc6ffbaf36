package ir

import (
	"fmt"
	"strings"

	"github.com/bson-format/go-bson/wire"
)

// regexOptionChars is the closed set of wire regex option characters,
// in canonical (sorted) order: case-insensitive, locale word match,
// multiline, dotall, unicode, verbose.
const regexOptionChars = "ilmsux"

// CanonicalRegexOptions validates opts against the supported option
// characters and returns them sorted with duplicates removed.
func CanonicalRegexOptions(opts string) (string, error) {
	seen := [len(regexOptionChars)]bool{}
	for i := 0; i < len(opts); i++ {
		j := strings.IndexByte(regexOptionChars, opts[i])
		if j < 0 {
			return "", fmt.Errorf("%w: %q in %q", ErrRegexOptions, opts[i], opts)
		}
		seen[j] = true
	}
	var sb strings.Builder
	for i, ok := range seen {
		if ok {
			sb.WriteByte(regexOptionChars[i])
		}
	}
	return sb.String(), nil
}

// Regex is a regular expression value. Options are canonicalized on
// encode.
type Regex struct {
	Pattern string
	Options string
}

func (Regex) Kind() wire.Type { return wire.TypeRegex }

func (r Regex) appendTo(b *wire.Buffer, key string) error {
	opts, err := CanonicalRegexOptions(r.Options)
	if err != nil {
		return err
	}
	return b.AppendRegex(key, r.Pattern, opts)
}
