package main

import (
	"github.com/bson-format/go-bson/ir"

	"github.com/scott-cotton/cli"
)

func bDump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		cfg.Dump.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var ropts []ir.ReadOption
	if cfg.Deprecated {
		ropts = append(ropts, ir.ReadDeprecatedAs())
	}
	for _, arg := range argsOrStdin(args) {
		docs, err := readDocs(arg, ropts...)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if err := writeValue(cfg.MainConfig, cc.Out, doc); err != nil {
				return err
			}
		}
	}
	return nil
}
