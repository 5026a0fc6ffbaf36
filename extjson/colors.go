package extjson

import (
	"strings"

	"github.com/bson-format/go-bson/wire"

	"github.com/fatih/color"
)

type Colorable struct {
	Type wire.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
	WrapperColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range wire.Types() {
		able := Colorable{
			Type: t,
			Attr: WrapperColor,
		}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	for _, t := range []wire.Type{wire.TypeDouble, wire.TypeInt32, wire.TypeInt64, wire.TypeDecimal128} {
		able.Type = t
		colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	}

	able.Type = wire.TypeNull
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Type = wire.TypeBool
	colors.Map[able] = color.CyanString

	able.Type = wire.TypeDocument
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Attr = SepColor
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()

	able.Type = wire.TypeString
	able.Attr = ValueColor
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Type = wire.TypeObjectID
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()

	able.Type = wire.TypeDateTime
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	able.Type = wire.TypeRegex
	colors.Map[able] = color.RGB(88, 158, 86).SprintfFunc()

	able.Type = wire.TypeBinary
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t wire.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t wire.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
