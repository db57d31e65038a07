package main

import (
	"fmt"
	"io"

	"github.com/dpotapov/toyhtml/markup"

	"github.com/scott-cotton/cli"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires an expression", cli.ErrUsage)
	}
	q, err := markup.CompileQuery(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, name := range files {
		doc, err := readDoc(cc.In, name)
		if err != nil {
			return err
		}
		res := markup.Parse(doc, cfg.parseOpts(name)...)
		prefix := ""
		if len(files) > 1 {
			prefix = name + ": "
		}
		if err := runQuery(cc.Out, q, res, prefix, cfg.Count); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", name, q, err)
		}
	}
	return nil
}

// runQuery writes every tag of res matching q as HTML, one per line, or just the number
// of matches when count is set.
func runQuery(w io.Writer, q *markup.Query, res markup.ParseResult, prefix string, count bool) error {
	found, err := q.Select(res.Nodes)
	if err != nil {
		return err
	}
	if count {
		_, err := fmt.Fprintf(w, "%s%d\n", prefix, len(found))
		return err
	}
	for _, t := range found {
		s, err := markup.RenderString([]markup.Node{t})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, s); err != nil {
			return err
		}
	}
	return nil
}
