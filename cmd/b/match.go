package main

import (
	"fmt"

	"github.com/bson-format/go-bson/debug"
	"github.com/bson-format/go-bson/gomap"

	"github.com/scott-cotton/cli"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

func bMatch(cfg *MatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Match.Parse(cc, args)
	if err != nil {
		cfg.Match.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: match requires an expression argument", cli.ErrUsage)
	}
	program, err := expr.Compile(args[0], expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return fmt.Errorf("error compiling %q: %w", args[0], err)
	}

	matched := 0
	for _, arg := range argsOrStdin(args[1:]) {
		docs, err := readDocs(arg)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			ok, err := matchDoc(program, gomap.ToAny(doc))
			if err != nil {
				return fmt.Errorf("error evaluating %q on %s: %w", args[0], arg, err)
			}
			if debug.Match() {
				debug.Logf("match: %v on %s\n", ok, arg)
			}
			if !ok {
				continue
			}
			matched++
			if cfg.Count {
				continue
			}
			if err := writeValue(cfg.MainConfig, cc.Out, doc); err != nil {
				return err
			}
		}
	}
	if cfg.Count {
		_, err := fmt.Fprintf(cc.Out, "%d\n", matched)
		return err
	}
	if matched == 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func matchDoc(program *vm.Program, env any) (bool, error) {
	res, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("expression result is %T, not bool", res)
	}
	return b, nil
}
