package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bson-format/go-bson/extjson"

	"github.com/scott-cotton/cli"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func bDiff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two arguments", cli.ErrUsage)
	}
	from, to := args[0], args[1]
	if cfg.Reverse {
		from, to = to, from
	}
	fromText, err := diffText(from)
	if err != nil {
		return err
	}
	toText, err := diffText(to)
	if err != nil {
		return err
	}
	return writeDiff(cc.Out, fromText, toText, cfg.Color)
}

// diffText renders an input as canonical indented text so the line
// diff sees one element per line and exact kinds.
func diffText(arg string) (string, error) {
	docs, err := readDocs(arg)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, doc := range docs {
		s, err := extjson.EncodeToString(doc, extjson.Canonical(true), extjson.Indent(2))
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func writeDiff(w io.Writer, from, to string, colorize bool) error {
	diffCfg := diffpatch.New()
	fromRunes, toRunes, lines := diffCfg.DiffLinesToRunes(from, to)
	diffs := diffCfg.DiffCharsToLines(diffCfg.DiffMainRunes(fromRunes, toRunes, false), lines)

	insFmt := color.GreenString
	delFmt := color.RedString
	if !colorize {
		insFmt = func(s string, _ ...any) string { return s }
		delFmt = insFmt
	}
	for _, diff := range diffs {
		var prefix string
		var paint func(string, ...any) string
		switch diff.Type {
		case diffpatch.DiffInsert:
			prefix, paint = "+", insFmt
		case diffpatch.DiffDelete:
			prefix, paint = "-", delFmt
		default:
			prefix, paint = " ", func(s string, _ ...any) string { return s }
		}
		for _, line := range splitDiffLines(diff.Text) {
			if _, err := io.WriteString(w, paint(prefix+line)+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func splitDiffLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
