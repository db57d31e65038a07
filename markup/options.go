package markup

import (
	"io"
	"log/slog"
)

type config struct {
	logger      *slog.Logger
	maxDepth    int
	warnUnknown bool
	source      string
}

// Option configures a parse.
type Option func(*config)

func newConfig(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg
}

// WithLogger logs every diagnostic at debug level as it is found.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMaxDepth limits how deep tags may nest. A tag opened at the limit is
// kept without children, its content up to the matching closing tag is
// skipped and an error is reported. Zero means no limit.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = max(0, n) }
}

// WithUnknownTagWarnings reports a warning for every tag name that is not a
// known HTML name. Unknown tags are parsed like any other.
func WithUnknownTagWarnings(enabled bool) Option {
	return func(c *config) { c.warnUnknown = enabled }
}

// WithSourceName sets the document name used in ParseError messages.
func WithSourceName(name string) Option {
	return func(c *config) { c.source = name }
}
