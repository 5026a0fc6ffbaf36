package main

import (
	"fmt"
	"os"

	"github.com/bson-format/go-bson/debug"
	"github.com/bson-format/go-bson/extjson"

	"github.com/scott-cotton/cli"

	jsonpatch "github.com/evanphx/json-patch"
)

func bPatch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.String == cfg.File {
		return fmt.Errorf("%w: patch requires exactly one of -s and -f", cli.ErrUsage)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch argument", cli.ErrUsage)
	}
	var patchData []byte
	if cfg.String {
		patchData = []byte(args[0])
	} else {
		patchData, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading patch %s: %w", args[0], err)
		}
	}
	ops, err := jsonpatch.DecodePatch(patchData)
	if err != nil {
		return fmt.Errorf("error decoding patch: %w", err)
	}

	for _, arg := range argsOrStdin(args[1:]) {
		docs, err := readDocs(arg)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			// the patch applies to the canonical rendering so
			// kind wrappers survive the round trip
			jIn, err := extjson.EncodeToString(doc, extjson.Canonical(true))
			if err != nil {
				return err
			}
			if debug.Patch() {
				debug.Logf("patch input: %s\n", jIn)
			}
			jOut, err := ops.Apply([]byte(jIn))
			if err != nil {
				return fmt.Errorf("error applying patch to %s: %w", arg, err)
			}
			out, err := extjson.DecodeDocument(jOut)
			if err != nil {
				return fmt.Errorf("error decoding patch result: %w", err)
			}
			if err := writeValue(cfg.MainConfig, cc.Out, out); err != nil {
				return err
			}
		}
	}
	return nil
}
