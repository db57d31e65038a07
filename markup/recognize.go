package markup

import "strings"

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	doctypeOpen  = "<!DOCTYPE"
	closerOpen   = "</"
)

// A recognizer looks for one syntactic unit at c. It returns the node it
// built, if any, and the cursor it stopped at. A recognizer that does not
// find its unit returns (nil, c). One that finds a broken unit reports a
// diagnostic and returns nil with a cursor past c.
type recognizer func(p *parser, c cursor) (Node, cursor)

func (p *parser) parseComment(c cursor) (Node, cursor) {
	if !c.startsWith(commentOpen) {
		return nil, c
	}
	body := c.advance(len(commentOpen))
	end := body.index(commentClose)
	if end < 0 {
		p.errorf(c, len(commentOpen), ErrMalformed, "unterminated comment at position %d", c.pos)
		return nil, c.advance(1)
	}
	return &Comment{Content: body.src[body.pos:end]}, body.seek(end + len(commentClose))
}

// parseDoctype turns <!DOCTYPE name ...> into a "!DOCTYPE" pseudo-tag whose
// only attribute is named after the declared type. A missing ">" is not
// reported.
func (p *parser) parseDoctype(c cursor) (Node, cursor) {
	if !c.startsWith(doctypeOpen) {
		return nil, c
	}
	c = c.advance(len(doctypeOpen)).skipWhitespace()
	start := c
	c = c.skipWhile(func(b byte) bool { return b != '>' && !isSpace(b) })
	name := c.since(start)
	if name == "" {
		name = "html"
	}
	c = c.skipUntil('>')
	if c.at('>') {
		c = c.advance(1)
	}
	return &Tag{
		Name:       doctypeName,
		Attributes: []Attribute{{Name: name, Value: "true"}},
		Children:   []Node{},
	}, c
}

// parseVoidTag recognizes void elements, with or without the trailing
// slash. The name is read ahead and only committed when it is void, so the
// regular tag path can rescan from the same position.
func (p *parser) parseVoidTag(c cursor) (Node, cursor) {
	name, next := readTagName(c.advance(1))
	if name == "" || !isVoid(name) {
		return nil, c
	}
	attrs, next := p.parseAttributes(next.skipWhitespace())
	switch {
	case next.startsWith("/>"):
		next = next.advance(2)
	case next.at('>'):
		next = next.advance(1)
	default:
		p.errorf(next, 1, ErrMalformed, `expected "/>" or ">" for void tag <%s> at position %d`, name, next.pos)
		return nil, next.advance(1)
	}
	return &Tag{Name: name, Attributes: attrs, Children: []Node{}}, next
}

// parseAttributes collects attributes until ">" or end of input. It stops
// early, without consuming anything more, when no attribute name can be
// read; the caller decides whether what follows is acceptable. Only quoted
// values are values: after "name=" anything else is left to be read as the
// next attribute name.
func (p *parser) parseAttributes(c cursor) ([]Attribute, cursor) {
	attrs := []Attribute{}
	for !c.eof() && !c.at('>') {
		c = c.skipWhitespace()
		start := c
		c = c.skipWhile(isAttrNameChar)
		if c.pos == start.pos {
			break
		}
		attr := Attribute{Name: c.since(start), Value: "true"}
		c = c.skipWhitespace()
		if c.at('=') {
			c = c.advance(1).skipWhitespace()
			if q := c.peek(); q != '"' && q != '\'' {
				continue
			}
			attr.Value, c = readQuoted(c)
		}
		attrs = append(attrs, attr)
	}
	return attrs, c
}

// readQuoted reads the value in the quotes at c. A value without its
// closing quote runs to end of input.
func readQuoted(c cursor) (string, cursor) {
	q := c.peek()
	start := c.advance(1)
	end := start.skipUntil(q)
	return end.since(start), end.advance(1)
}

// parseOpeningTag reads "<name attrs>" and returns a tag without children.
// It returns nil and c unchanged when no name follows "<". When the ">" is
// missing it reports an error and returns nil with the cursor at the
// offending character; the caller steps over it.
func (p *parser) parseOpeningTag(c cursor) (*Tag, cursor) {
	name, next := readTagName(c.advance(1))
	if name == "" {
		return nil, c
	}
	attrs, next := p.parseAttributes(next.skipWhitespace())
	if !next.at('>') {
		p.errorf(next, 1, ErrMalformed, "expected '>' for opening tag <%s> at position %d", name, next.pos)
		return nil, next
	}
	return &Tag{Name: name, Attributes: attrs, Children: []Node{}}, next.advance(1)
}

// parseText consumes everything up to the next "<". Runs that are only
// whitespace are consumed without producing a node.
func (p *parser) parseText(c cursor) (Node, cursor) {
	start := c
	c = c.skipUntil('<')
	if c.pos == start.pos {
		return nil, c
	}
	content := strings.TrimSpace(c.since(start))
	if content == "" {
		return nil, c
	}
	return &Text{Content: content}, c
}

// closerName returns the name of the closing tag "</name>" at c.
func closerName(c cursor) (string, bool) {
	if !c.startsWith(closerOpen) {
		return "", false
	}
	name, next := readTagName(c.advance(len(closerOpen)))
	if name == "" || !next.at('>') {
		return "", false
	}
	return name, true
}
