package main

import (
	"fmt"

	"github.com/bson-format/go-bson/ir"

	"github.com/scott-cotton/cli"
)

func bGet(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a document path", cli.ErrUsage)
	}
	path := args[0]
	for _, arg := range argsOrStdin(args[1:]) {
		docs, err := readDocs(arg)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			res, err := ir.GetPath(doc, path)
			if err != nil {
				return fmt.Errorf("error executing get on %s: %w", arg, err)
			}
			if res == nil {
				// absent paths encode nothing and don't yell either
				continue
			}
			if err := writeValue(cfg.MainConfig, cc.Out, res); err != nil {
				return err
			}
		}
	}
	return nil
}
