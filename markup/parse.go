// Package markup parses HTML-like markup into a tree of tags, text runs and
// comments. The parser never gives up on malformed input: whatever it cannot
// make sense of is reported as a warning or error and skipped, and the rest
// of the document is still parsed.
package markup

import (
	"fmt"
	"io"
	"log/slog"
)

// A parser holds the state of a single Parse call. The scan position is not
// part of it; it travels through the recognizers as a cursor value.
type parser struct {
	cfg   config
	src   string
	lines lineIndex

	// open holds the names of the tags whose children are being parsed,
	// outermost first.
	open []string

	diags    []Diagnostic
	warnings []string
	errors   []string
}

// Parse parses a whole document. It always returns a result; problems with
// the input are reported through ParseResult.Warnings and ParseResult.Errors.
func Parse(input string, opts ...Option) ParseResult {
	p := &parser{cfg: newConfig(opts), src: input, warnings: []string{}, errors: []string{}}
	nodes := p.parseDocument(cursor{src: input})
	return ParseResult{
		Nodes:       nodes,
		Warnings:    p.warnings,
		Errors:      p.errors,
		Diagnostics: p.diags,
		src:         input,
		source:      p.cfg.source,
	}
}

// ParseReader reads r to the end and parses it. The only error it returns
// is the one from reading.
func ParseReader(r io.Reader, opts ...Option) (ParseResult, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return ParseResult{}, fmt.Errorf("read document: %w", err)
	}
	return Parse(string(b), opts...), nil
}

// parseDocument alternates between tags and text until the input runs out.
func (p *parser) parseDocument(c cursor) []Node {
	nodes := []Node{}
	for !c.eof() {
		var n Node
		if c.at('<') {
			var next cursor
			n, next = p.parseTag(c)
			if n == nil && next.pos == c.pos {
				p.errorf(c, 1, ErrMalformed, "malformed tag at position %d", c.pos)
				next = c.advance(1)
			}
			c = next
		} else {
			n, c = p.parseText(c)
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// parseTag tries each recognizer in turn at a "<". The first one that
// builds a node or consumes input wins. A closing tag is never matched here:
// it ends the scope of whoever called parseTag.
func (p *parser) parseTag(c cursor) (Node, cursor) {
	for _, recognize := range [...]recognizer{
		(*parser).parseComment,
		(*parser).parseDoctype,
		(*parser).parseVoidTag,
	} {
		if n, next := recognize(p, c); n != nil || next.pos != c.pos {
			return n, next
		}
	}
	if c.startsWith(closerOpen) {
		return nil, c
	}
	return p.parseRegularTag(c)
}

// parseRegularTag parses an opening tag and then its children, up to the
// matching closing tag. A tag left open at end of input, or at the closing
// tag of an enclosing element, is still returned, with a warning.
func (p *parser) parseRegularTag(c cursor) (Node, cursor) {
	start := c
	tag, c := p.parseOpeningTag(c)
	if tag == nil {
		if c.pos > start.pos {
			// The opening tag already reported its missing ">".
			return nil, c.advance(1)
		}
		// At top level the document loop reports the stray "<" itself.
		if len(p.open) > 0 {
			p.errorf(start, 1, ErrMalformed, "malformed opening tag at position %d", start.pos)
		}
		return nil, c
	}
	if p.cfg.warnUnknown && !IsKnownTag(tag.Name) {
		p.warnf(start, c.pos-start.pos, ErrUnknownTag, "unknown tag: <%s>", tag.Name)
	}

	closer := closerOpen + tag.Name + ">"
	if p.cfg.maxDepth > 0 && len(p.open) >= p.cfg.maxDepth {
		p.errorf(start, c.pos-start.pos, ErrDepth, "maximum nesting depth %d exceeded at position %d", p.cfg.maxDepth, start.pos)
		return tag, skipElement(c, tag.Name)
	}

	p.open = append(p.open, tag.Name)
	for !c.eof() && !c.startsWith(closer) && !p.closesEnclosing(c) {
		var child Node
		next := c
		if c.at('<') {
			child, next = p.parseTag(c)
		} else {
			child, next = p.parseText(c)
		}
		if child != nil {
			tag.Children = append(tag.Children, child)
		} else if next.pos == c.pos {
			next = c.advance(1)
		}
		c = next
	}
	p.open = p.open[:len(p.open)-1]

	if c.startsWith(closer) {
		return tag, c.advance(len(closer))
	}
	p.warnf(start, 1, ErrUnclosed, "unclosed tag: <%s>", tag.Name)
	return tag, c
}

// skipElement returns the cursor past the closer of the element named name
// whose opening tag ends at c, or end of input when it never closes. Nested
// elements with the same name are counted so that the closer found is the
// element's own. Comments are skipped whole.
func skipElement(c cursor, name string) cursor {
	closer := closerOpen + name + ">"
	for depth := 1; ; {
		c = c.skipUntil('<')
		switch {
		case c.eof():
			return c
		case c.startsWith(closer):
			c = c.advance(len(closer))
			if depth--; depth == 0 {
				return c
			}
		case c.startsWith(commentOpen):
			if end := c.index(commentClose); end >= 0 {
				c = c.seek(end + len(commentClose))
			} else {
				c = c.advance(1)
			}
		default:
			if n, _ := readTagName(c.advance(1)); n == name {
				depth++
			}
			c = c.advance(1)
		}
	}
}

// closesEnclosing reports whether c is at the closing tag of an element
// that encloses the one being parsed. Such a closer ends the current
// element and is left for the enclosing call.
func (p *parser) closesEnclosing(c cursor) bool {
	name, ok := closerName(c)
	if !ok {
		return false
	}
	for _, open := range p.open[:len(p.open)-1] {
		if open == name {
			return true
		}
	}
	return false
}

func (p *parser) errorf(at cursor, length int, cause error, format string, args ...any) {
	d := p.report(SeverityError, at, length, cause, format, args...)
	p.errors = append(p.errors, d.Message)
}

func (p *parser) warnf(at cursor, length int, cause error, format string, args ...any) {
	d := p.report(SeverityWarning, at, length, cause, format, args...)
	p.warnings = append(p.warnings, d.Message)
}

func (p *parser) report(sev Severity, at cursor, length int, cause error, format string, args ...any) Diagnostic {
	if p.lines == nil {
		p.lines = newLineIndex(p.src)
	}
	d := Diagnostic{
		Severity: sev,
		Span:     p.lines.span(p.src, at.pos, length),
		Message:  fmt.Sprintf(format, args...),
		cause:    cause,
	}
	p.diags = append(p.diags, d)
	p.cfg.logger.Debug("Parse diagnostic",
		slog.String("severity", sev.String()),
		slog.Int("offset", d.Span.Offset),
		slog.String("message", d.Message))
	return d
}
