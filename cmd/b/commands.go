package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts,
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		})

	return cli.NewCommandAt(&cfg.Main, "b").
		WithSynopsis("b [opts] command [opts]").
		WithDescription("b is a tool for working with binary document files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return bMain(cfg, cc, args)
		}).
		WithSubs(
			DumpCommand(cfg),
			GetCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			MatchCommand(cfg))
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("dump").
		WithAliases("d").
		WithSynopsis("dump [files]").
		WithDescription("dump document files as extended json or yaml").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return bDump(cfg, cc, args)
		})
	cfg.Dump = cmd
	return cmd
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithSynopsis("get path [files]").
		WithDescription("get values at a dotted path, like a.b[0].c").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return bGet(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithSynopsis("diff from to").
		WithDescription("diff two document files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return bDiff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p").
		WithSynopsis("patch [-s patch | -f patchfile] [files]").
		WithDescription("apply a json patch to document files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return bPatch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func MatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("match").
		WithAliases("m").
		WithSynopsis("match expr [files]").
		WithDescription("select documents matching a boolean expression").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return bMatch(cfg, cc, args)
		})
	cfg.Match = cmd
	return cmd
}
