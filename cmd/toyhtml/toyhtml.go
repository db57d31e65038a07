package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func toyMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.loadConfig(); err != nil {
		return err
	}
	name, args, err := route(args, func(s string) bool { return cfg.Main.FindSub(cc, s) != nil })
	if err != nil {
		cfg.Main.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	sub := cfg.Main.FindSub(cc, name)
	err = sub.Run(cc, args)
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// route picks the subcommand to run and the arguments to pass it.
// toyhtml <file> is short for toyhtml parse <file>. A first argument that
// exists as a file is a document even when it also names a command.
func route(args []string, isCommand func(string) bool) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, fmt.Errorf("%w: missing input file", cli.ErrUsage)
	}
	if !isFile(args[0]) && isCommand(args[0]) {
		return args[0], args[1:], nil
	}
	return "parse", args, nil
}

func isFile(name string) bool {
	fi, err := os.Stat(name)
	return err == nil && !fi.IsDir()
}
