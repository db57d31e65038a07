package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dpotapov/toyhtml/markup"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

// configEnv names the environment variable holding the default config file.
const configEnv = "TOYHTML_CONFIG"

type MainConfig struct {
	Color       bool   `cli:"name=color desc='color diagnostics and diffs'"`
	Verbose     bool   `cli:"name=v aliases=verbose desc='log every diagnostic to stderr'"`
	Strict      bool   `cli:"name=strict desc='fail when a document has errors'"`
	MaxDepth    int    `cli:"name=maxDepth desc='maximum tag nesting depth, 0 for no limit'"`
	WarnUnknown bool   `cli:"name=warnUnknown desc='warn about tags that are not known HTML elements'"`
	ConfigFile  string `cli:"name=config desc='YAML config file (default $TOYHTML_CONFIG)'"`

	Format markup.Format

	Main *cli.Command
}

// FileConfig is the content of the YAML config file. Options given on the command line
// take precedence over it.
type FileConfig struct {
	Format      string `yaml:"format"`
	Color       *bool  `yaml:"color"`
	Strict      *bool  `yaml:"strict"`
	MaxDepth    *int   `yaml:"maxDepth"`
	WarnUnknown *bool  `yaml:"warnUnknown"`
}

func loadFileConfig(path string) (*FileConfig, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	fc := &FileConfig{}
	if err := yaml.UnmarshalWithOptions(d, fc, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return fc, nil
}

func (cfg *MainConfig) fmtFunc(_ *cli.Context, v string) (any, error) {
	f, err := markup.ParseFormat(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Format = f
	return f, nil
}

// isSet reports whether the named option was given on the command line.
func (cfg *MainConfig) isSet(name string) bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

// loadConfig merges the config file, if any, into cfg.
func (cfg *MainConfig) loadConfig() error {
	path := cfg.ConfigFile
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		return nil
	}
	fc, err := loadFileConfig(path)
	if err != nil {
		return err
	}
	return cfg.apply(fc, cfg.isSet)
}

func (cfg *MainConfig) apply(fc *FileConfig, isSet func(string) bool) error {
	if fc.Format != "" && !isSet("f") {
		f, err := markup.ParseFormat(fc.Format)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		cfg.Format = f
	}
	if fc.Color != nil && !isSet("color") {
		cfg.Color = *fc.Color
	}
	if fc.Strict != nil && !isSet("strict") {
		cfg.Strict = *fc.Strict
	}
	if fc.MaxDepth != nil && !isSet("maxDepth") {
		cfg.MaxDepth = *fc.MaxDepth
	}
	if fc.WarnUnknown != nil && !isSet("warnUnknown") {
		cfg.WarnUnknown = *fc.WarnUnknown
	}
	return nil
}

func (cfg *MainConfig) logger() *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (cfg *MainConfig) parseOpts(name string) []markup.Option {
	return []markup.Option{
		markup.WithLogger(cfg.logger()),
		markup.WithMaxDepth(cfg.MaxDepth),
		markup.WithUnknownTagWarnings(cfg.WarnUnknown),
		markup.WithSourceName(name),
	}
}

// useColor reports whether output to w should be colored: always with -color, never
// when color is switched off explicitly, otherwise only on a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.isSet("color") {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ParseConfig struct {
	*MainConfig

	Parse *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Count bool `cli:"name=c aliases=count desc='print the number of matches only'"`

	Query *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Context int `cli:"name=context desc='unchanged lines shown around changes, -1 for all'"`

	Diff *cli.Command
}

type ServeConfig struct {
	*MainConfig

	Addr         string `cli:"name=addr desc='TCP listen address'"`
	MaxBodyBytes int    `cli:"name=maxBody desc='maximum document size in bytes'"`

	Serve *cli.Command
}
