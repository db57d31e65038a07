package main

import (
	"fmt"
	"io"

	"github.com/dpotapov/toyhtml/markup"
	"github.com/dpotapov/toyhtml/treediff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	var trees [2][]markup.Node
	for i, name := range args {
		doc, err := readDoc(cc.In, name)
		if err != nil {
			return err
		}
		trees[i] = markup.Parse(doc, cfg.parseOpts(name)...).Nodes
	}
	changed, err := runDiff(cfg, cc.Out, args[0], args[1], trees[0], trees[1])
	if err != nil {
		return err
	}
	if changed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// runDiff writes the differences between two trees to w and reports whether there were
// any.
func runDiff(cfg *DiffConfig, w io.Writer, fromName, toName string, from, to []markup.Node) (bool, error) {
	d := treediff.Diff(from, to)
	if !d.Changed() {
		return false, nil
	}
	opts := []treediff.FormatOption{treediff.WithContext(cfg.Context)}
	if cfg.useColor(w) {
		opts = append(opts, treediff.WithColors(treediff.NewColors()))
	}
	if _, err := fmt.Fprintf(w, "--- %s\n+++ %s\n", fromName, toName); err != nil {
		return false, err
	}
	if err := d.Format(w, opts...); err != nil {
		return false, err
	}
	return true, nil
}
