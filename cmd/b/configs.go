package main

import (
	"io"
	"os"

	"github.com/bson-format/go-bson/extjson"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Canonical bool `cli:"name=c aliases=canonical desc='canonical extended json output'"`
	Color     bool `cli:"name=color desc='encode with color'"`
	Compact   bool `cli:"name=compact desc='single line output'"`

	J bool `cli:"name=j aliases=json desc='output extended json (default)'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`
	W bool `cli:"name=wire desc='output raw wire bytes'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) encOpts(w io.Writer) []extjson.EncodeOption {
	res := []extjson.EncodeOption{
		extjson.Canonical(cfg.Canonical),
	}
	if !cfg.Compact {
		res = append(res, extjson.Indent(2))
	}
	if cfg.Color {
		res = append(res, extjson.EncodeColors(extjson.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, extjson.EncodeColors(extjson.NewColors()))
	}
	return res
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

type DumpConfig struct {
	*MainConfig
	Deprecated bool `cli:"name=deprecated desc='map retired element types to live ones'"`

	Dump *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	String bool `cli:"name=s desc='patch arg as string'"`
	File   bool `cli:"name=f desc='patch arg as file'"`

	Patch *cli.Command
}

type MatchConfig struct {
	*MainConfig
	Count bool `cli:"name=count desc='print the number of matching documents'"`

	Match *cli.Command
}
