package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dpotapov/toyhtml"
	"github.com/dpotapov/toyhtml/markup"

	"github.com/scott-cotton/cli"
)

// sourceContextLines is how many lines around an error -strict prints.
const sourceContextLines = 2

func parse(cfg *ParseConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse.Parse(cc, args)
	if err != nil {
		cfg.Parse.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	name, err := fileArg(args)
	if err != nil {
		return err
	}
	doc, err := readDoc(cc.In, name)
	if err != nil {
		return err
	}
	failed, err := runParse(cfg.MainConfig, cc.Out, os.Stderr, name, doc)
	if err != nil {
		return err
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// fileArg returns the single document argument of parse. "-" is stdin.
func fileArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("%w: missing input file", cli.ErrUsage)
	case 1:
		return args[0], nil
	}
	return "", fmt.Errorf("%w: parse takes one file argument, got %d", cli.ErrUsage, len(args))
}

// runParse parses doc and writes the encoded result to out and the diagnostics to diag.
// It reports failure when -strict is in effect and the document has errors.
func runParse(cfg *MainConfig, out, diag io.Writer, name, doc string) (bool, error) {
	res := markup.Parse(doc, cfg.parseOpts(name)...)
	if err := markup.Encode(out, res, cfg.Format); err != nil {
		return false, fmt.Errorf("encode %s: %w", cfg.Format, err)
	}

	pal := newPalette(cfg.useColor(diag))
	writeDiagnostics(diag, name, res, pal)

	perr := res.Err()
	if !cfg.Strict || perr == nil {
		return false, nil
	}
	report := toyhtml.NewErrorReport(perr, sourceContextLines)
	for _, e := range report.Errors {
		fmt.Fprintf(diag, "\n%s\n", pal.Error("%s:%d:%d: %s", name, e.Line, e.Column, e.Message))
		if e.Source != nil {
			writeSourceContext(diag, e.Source, pal)
		}
	}
	return true, nil
}

// writeDiagnostics lists the errors, then the warnings, then a summary line.
func writeDiagnostics(w io.Writer, name string, res markup.ParseResult, pal *palette) {
	for _, sev := range []markup.Severity{markup.SeverityError, markup.SeverityWarning} {
		paint := pal.Warning
		if sev == markup.SeverityError {
			paint = pal.Error
		}
		for _, d := range res.Diagnostics {
			if d.Severity != sev {
				continue
			}
			fmt.Fprintf(w, "%s:%d:%d: %s %s\n", name, d.Span.Line, d.Span.Column, paint("%s:", sev), d.Message)
		}
	}
	fmt.Fprintln(w, pal.Faint("parsed %d nodes: %d errors, %d warnings",
		len(res.Nodes), len(res.Errors), len(res.Warnings)))
}

// writeSourceContext prints the lines of ctx with a caret under the error column.
func writeSourceContext(w io.Writer, ctx *markup.SourceContext, pal *palette) {
	width := len(fmt.Sprint(ctx.Lines[len(ctx.Lines)-1].Number))
	for _, l := range ctx.Lines {
		fmt.Fprintf(w, "%s %s\n", pal.Faint("%*d |", width, l.Number), l.Text)
		if l.Number != ctx.ErrorLine {
			continue
		}
		// keep tabs so the caret lines up with the text above it
		var pad strings.Builder
		for i, r := range []rune(l.Text) {
			if i >= ctx.ErrorColumn-1 {
				break
			}
			if r == '\t' {
				pad.WriteRune('\t')
			} else {
				pad.WriteByte(' ')
			}
		}
		caret := strings.Repeat("^", max(1, ctx.ErrorLength))
		fmt.Fprintf(w, "%s %s%s\n", pal.Faint("%*s |", width, ""), pad.String(), pal.Caret("%s", caret))
	}
}

// readDoc reads the document at path, or in when path is "-".
func readDoc(in io.Reader, path string) (string, error) {
	r := in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("error reading %q: %w", path, err)
	}
	return string(d), nil
}
