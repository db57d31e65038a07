package markup

import "strings"

// cursor is a scan position over an immutable input. Recognizers take a
// cursor by value and return the cursor they stopped at; a recognizer that
// does not match returns the cursor it was given, so there is nothing to roll
// back.
type cursor struct {
	src string
	pos int
}

func (c cursor) eof() bool {
	return c.pos >= len(c.src)
}

// peek returns the byte at the cursor, or 0 at end of input.
func (c cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.pos]
}

func (c cursor) at(b byte) bool {
	return !c.eof() && c.src[c.pos] == b
}

func (c cursor) startsWith(lit string) bool {
	return strings.HasPrefix(c.src[c.pos:], lit)
}

func (c cursor) advance(n int) cursor {
	c.pos = min(c.pos+n, len(c.src))
	return c
}

// seek moves the cursor to an absolute offset. It never moves backwards.
func (c cursor) seek(pos int) cursor {
	if pos > c.pos {
		c.pos = min(pos, len(c.src))
	}
	return c
}

func (c cursor) skipWhile(f func(byte) bool) cursor {
	for c.pos < len(c.src) && f(c.src[c.pos]) {
		c.pos++
	}
	return c
}

func (c cursor) skipWhitespace() cursor {
	return c.skipWhile(isSpace)
}

// skipUntil advances to the next occurrence of b, or to end of input.
func (c cursor) skipUntil(b byte) cursor {
	if i := strings.IndexByte(c.src[c.pos:], b); i >= 0 {
		c.pos += i
	} else {
		c.pos = len(c.src)
	}
	return c
}

// index returns the absolute offset of the next occurrence of lit at or
// after the cursor, or -1.
func (c cursor) index(lit string) int {
	i := strings.Index(c.src[c.pos:], lit)
	if i < 0 {
		return -1
	}
	return c.pos + i
}

// since returns the input between start and c.
func (c cursor) since(start cursor) string {
	return c.src[start.pos:c.pos]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

func isLetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isTagNameChar(b byte) bool {
	return isLetter(b) || isDigit(b) || b == '!'
}

func isAttrNameChar(b byte) bool {
	return isLetter(b) || b == '-'
}

// readTagName reads a tag name at c without requiring the caller to commit
// to it. A name starts with a letter or '!' and continues with letters,
// digits and '!'. It returns "" and c unchanged when no name is present.
func readTagName(c cursor) (string, cursor) {
	if b := c.peek(); !isLetter(b) && b != '!' {
		return "", c
	}
	start := c
	c = c.skipWhile(isTagNameChar)
	return c.since(start), c
}
