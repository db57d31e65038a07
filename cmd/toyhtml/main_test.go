package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dpotapov/toyhtml/markup"
	"github.com/scott-cotton/cli"
	"github.com/stretchr/testify/require"
)

func TestRunParse(t *testing.T) {
	cfg := &MainConfig{Format: markup.FormatDump}

	var out, diag bytes.Buffer
	failed, err := runParse(cfg, &out, &diag, "page.html", `<p>hi`)
	require.NoError(t, err)
	require.False(t, failed)
	require.Equal(t, "| <p>\n|   \"hi\"\n", out.String())
	require.Equal(t, "page.html:1:1: warning: unclosed tag: <p>\nparsed 1 nodes: 0 errors, 1 warnings\n", diag.String())
}

func TestRunParse_json(t *testing.T) {
	cfg := &MainConfig{}

	var out, diag bytes.Buffer
	_, err := runParse(cfg, &out, &diag, "-", `<img src="a.png"/>`)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"nodes": [{"type": "tag", "name": "img", "attributes": [{"name": "src", "value": "a.png"}], "children": []}],
		"warnings": [],
		"errors": []
	}`, out.String())
}

func TestRunParse_strict(t *testing.T) {
	doc := "<div>\n  <1>\n</div>"

	var out, diag bytes.Buffer
	failed, err := runParse(&MainConfig{Format: markup.FormatDump}, &out, &diag, "page.html", doc)
	require.NoError(t, err)
	require.False(t, failed, "errors only fail in strict mode")

	out.Reset()
	diag.Reset()
	failed, err = runParse(&MainConfig{Format: markup.FormatDump, Strict: true}, &out, &diag, "page.html", doc)
	require.NoError(t, err)
	require.True(t, failed)
	require.Equal(t, `page.html:2:3: error: malformed opening tag at position 8
parsed 1 nodes: 1 errors, 0 warnings

page.html:2:3: malformed opening tag at position 8
1 | <div>
2 |   <1>
  |   ^
3 | </div>
`, diag.String())
}

func TestWriteSourceContext_tabs(t *testing.T) {
	ctx := &markup.SourceContext{
		Lines:       []markup.SourceLine{{Number: 9, Text: "x"}, {Number: 10, Text: "\t\t<1>"}},
		ErrorLine:   10,
		ErrorColumn: 3,
		ErrorLength: 1,
	}
	var buf bytes.Buffer
	writeSourceContext(&buf, ctx, newPalette(false))
	require.Equal(t, " 9 | x\n10 | \t\t<1>\n   | \t\t^\n", buf.String())
}

func TestRunQuery(t *testing.T) {
	res := markup.Parse(`<nav><a href="/">Home</a><a>Disabled</a></nav>`)

	q, err := markup.CompileQuery(`Has("href")`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runQuery(&buf, q, res, "", false))
	require.Equal(t, "<a href=\"/\">Home</a>\n", buf.String())

	q, err = markup.CompileQuery(`Name == "a"`)
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, runQuery(&buf, q, res, "nav.html: ", true))
	require.Equal(t, "nav.html: 2\n", buf.String())
}

func TestRunDiff(t *testing.T) {
	cfg := &DiffConfig{MainConfig: &MainConfig{}, Context: -1}

	var buf bytes.Buffer
	changed, err := runDiff(cfg, &buf, "a.html", "b.html",
		markup.Parse(`<p>a</p>`).Nodes, markup.Parse(`<p>b</p>`).Nodes)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "--- a.html\n+++ b.html\n  | <p>\n- |   \"a\"\n+ |   \"b\"\n", buf.String())

	buf.Reset()
	changed, err = runDiff(cfg, &buf, "a.html", "b.html",
		markup.Parse(`<p>a</p>`).Nodes, markup.Parse(`<p> a </p>`).Nodes)
	require.NoError(t, err)
	require.False(t, changed)
	require.Empty(t, buf.String())
}

func TestReadDoc(t *testing.T) {
	doc, err := readDoc(strings.NewReader("<p>stdin</p>"), "-")
	require.NoError(t, err)
	require.Equal(t, "<p>stdin</p>", doc)

	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>file</p>"), 0o644))
	doc, err = readDoc(nil, path)
	require.NoError(t, err)
	require.Equal(t, "<p>file</p>", doc)

	_, err = readDoc(nil, filepath.Join(t.TempDir(), "missing.html"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toyhtml.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: yaml\nstrict: true\nmaxDepth: 8\nwarnUnknown: true\n"), 0o644))

	fc, err := loadFileConfig(path)
	require.NoError(t, err)

	cfg := &MainConfig{MaxDepth: 2}
	setOnCommandLine := map[string]bool{"maxDepth": true}
	require.NoError(t, cfg.apply(fc, func(name string) bool { return setOnCommandLine[name] }))

	require.Equal(t, markup.FormatYAML, cfg.Format)
	require.True(t, cfg.Strict)
	require.True(t, cfg.WarnUnknown)
	require.Equal(t, 2, cfg.MaxDepth, "command line wins over the file")
	require.False(t, cfg.Color)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("colour: true\n"), 0o644))
	_, err = loadFileConfig(bad)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(bad, []byte("format: toml\n"), 0o644))
	fc, err = loadFileConfig(bad)
	require.NoError(t, err)
	require.ErrorContains(t, (&MainConfig{}).apply(fc, func(string) bool { return false }), `unknown format "toml"`)
}

func TestMainConfig_loadConfigFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toyhtml.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: dump\n"), 0o644))
	t.Setenv(configEnv, path)

	cfg := &MainConfig{}
	require.NoError(t, cfg.loadConfig())
	require.Equal(t, markup.FormatDump, cfg.Format)
}

func TestWriteDiagnostics_errorsBeforeWarnings(t *testing.T) {
	res := markup.Parse(`<p>a < b`)

	var buf bytes.Buffer
	writeDiagnostics(&buf, "x.html", res, newPalette(false))
	require.Equal(t, `x.html:1:6: error: malformed opening tag at position 5
x.html:1:1: warning: unclosed tag: <p>
parsed 1 nodes: 1 errors, 1 warnings
`, buf.String())
}

func TestRoute(t *testing.T) {
	commands := map[string]bool{"parse": true, "p": true, "query": true, "q": true}
	isCommand := func(s string) bool { return commands[s] }

	_, _, err := route(nil, isCommand)
	require.ErrorIs(t, err, cli.ErrUsage)

	name, args, err := route([]string{"q", "Has(\"href\")", "a.html"}, isCommand)
	require.NoError(t, err)
	require.Equal(t, "q", name)
	require.Equal(t, []string{"Has(\"href\")", "a.html"}, args)

	name, args, err = route([]string{"page.html"}, isCommand)
	require.NoError(t, err)
	require.Equal(t, "parse", name)
	require.Equal(t, []string{"page.html"}, args)

	// A document named like a command is still parsed.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.WriteFile("p", []byte("<p>x</p>"), 0o644))
	name, args, err = route([]string{"p"}, isCommand)
	require.NoError(t, err)
	require.Equal(t, "parse", name)
	require.Equal(t, []string{"p"}, args)
}

func TestFileArg(t *testing.T) {
	_, err := fileArg(nil)
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = fileArg([]string{"a.html", "b.html"})
	require.ErrorIs(t, err, cli.ErrUsage)

	name, err := fileArg([]string{"-"})
	require.NoError(t, err)
	require.Equal(t, "-", name)
}
