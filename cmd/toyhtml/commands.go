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
	opts := append(sOpts, &cli.Opt{
		Name:        "f",
		Aliases:     []string{"format"},
		Description: "output format: json/j, yaml/y, xml/x, html/h, dump/d/tree",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.fmtFunc), "(format)"),
	})

	return cli.NewCommandAt(&cfg.Main, "toyhtml").
		WithSynopsis("toyhtml [opts] <file> | toyhtml [opts] command [opts]").
		WithDescription("toyhtml parses HTML-like markup and reports what it could not make sense of.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return toyMain(cfg, cc, args)
		}).
		WithSubs(
			ParseCommand(cfg),
			QueryCommand(cfg),
			DiffCommand(cfg),
			ServeCommand(cfg))
}

func ParseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ParseConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Parse, "parse").
		WithAliases("p").
		WithSynopsis("parse <file>").
		WithDescription("parse a document and print its tree followed by the diagnostics").
		WithRun(func(cc *cli.Context, args []string) error {
			return parse(cfg, cc, args)
		})
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Query, "query").
		WithAliases("q").
		WithSynopsis("query [-c] <expr> [files]").
		WithDescription(queryDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return query(cfg, cc, args)
		})
}

const queryDescription = `print the tags matching an expression.

The expression is evaluated for every tag and must yield a bool. It can use

  Name      the tag name as written
  Attrs     map of attribute names to values
  Attr(n)   value of attribute n, or ""
  Has(n)    whether attribute n is present
  Depth     0 for top-level tags
  Text      the text content of the tag
  Children  number of child nodes
  Void      whether the tag is a void element

for example: Name == "a" && Has("href")`

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Context: 3}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-context n] <a> <b>").
		WithDescription("compare the trees of two documents; exits 1 when they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg, Addr: "localhost:8080"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithSynopsis("serve [-addr <addr>] [-maxBody n]").
		WithDescription("serve the parser over HTTP and WebSocket").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
}
