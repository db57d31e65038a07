package markup

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is the cause of every error-severity diagnostic except
	// ErrDepth.
	ErrMalformed = errors.New("malformed markup")

	// ErrUnclosed is the cause of an "unclosed tag" warning.
	ErrUnclosed = errors.New("unclosed tag")

	// ErrUnknownTag is the cause of an "unknown tag" warning.
	ErrUnknownTag = errors.New("unknown tag")

	// ErrDepth is reported when nesting goes deeper than WithMaxDepth allows.
	ErrDepth = errors.New("nesting too deep")
)

// Severity tells warnings from errors.
type Severity int

const (
	SeverityWarning Severity = iota + 1
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is a warning or error found while parsing. Message is the same
// string that lands in ParseResult.Warnings or ParseResult.Errors.
type Diagnostic struct {
	Severity Severity
	Span     Span
	Message  string

	cause error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Span.Line, d.Span.Column, d.Message)
}

// Cause returns the sentinel error classifying d.
func (d Diagnostic) Cause() error {
	return d.cause
}

// ParseError is a Diagnostic bound to the document it came from.
type ParseError struct {
	Source     string
	Diagnostic Diagnostic

	src   string
	lines lineIndex
}

func (r ParseResult) newParseError(d Diagnostic) *ParseError {
	return &ParseError{Source: r.source, Diagnostic: d, src: r.src}
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return e.Diagnostic.String()
	}
	return e.Source + ":" + e.Diagnostic.String()
}

func (e *ParseError) Unwrap() error {
	return e.Diagnostic.cause
}

// SourceLine is one line of a SourceContext.
type SourceLine struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// SourceContext is a window of source lines around a diagnostic.
type SourceContext struct {
	Lines       []SourceLine `json:"lines"`
	ErrorLine   int          `json:"errorLine"`
	ErrorColumn int          `json:"errorColumn"`
	ErrorLength int          `json:"errorLength"`
}

// SourceContext returns up to n lines before and after the line the error
// points at. It returns nil when the error carries no source text.
func (e *ParseError) SourceContext(n int) *SourceContext {
	if e.src == "" {
		return nil
	}
	if e.lines == nil {
		e.lines = newLineIndex(e.src)
	}
	sp := e.Diagnostic.Span
	ctx := &SourceContext{
		ErrorLine:   sp.Line,
		ErrorColumn: sp.Column,
		ErrorLength: sp.Length,
	}
	first, last := max(1, sp.Line-n), min(len(e.lines), sp.Line+n)
	for i := first; i <= last; i++ {
		ctx.Lines = append(ctx.Lines, SourceLine{Number: i, Text: e.lines.lineText(e.src, i)})
	}
	return ctx
}
