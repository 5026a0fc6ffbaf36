package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Encode bool
	Wire   bool
	Gomap  bool
	Match  bool
	Patch  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Encode = boolEnv("B_DEBUG_ENCODE")
	d.Wire = boolEnv("B_DEBUG_WIRE")
	d.Gomap = boolEnv("B_DEBUG_GOMAP")
	d.Match = boolEnv("B_DEBUG_MATCH")
	d.Patch = boolEnv("B_DEBUG_PATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Encode() bool {
	return d.Encode
}
func Wire() bool {
	return d.Wire
}
func Gomap() bool {
	return d.Gomap
}
func Match() bool {
	return d.Match
}
func Patch() bool {
	return d.Patch
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
