package markup

import (
	"sort"
	"unicode/utf8"
)

// Span represents a source location in a document
type Span struct {
	Offset int `json:"offset" yaml:"offset"` // Byte offset in the document
	Line   int `json:"line" yaml:"line"`     // 1-based line number
	Column int `json:"column" yaml:"column"` // 1-based column number (in runes, not bytes)
	Length int `json:"length" yaml:"length"` // Length in bytes
}

// IsZero returns true if the span is uninitialized
func (s Span) IsZero() bool {
	return s.Offset == 0 && s.Line == 0 && s.Column == 0 && s.Length == 0
}

// End returns the end offset of the span
func (s Span) End() int {
	return s.Offset + s.Length
}

// lineIndex holds the byte offsets at which each line of a document starts.
type lineIndex []int

func newLineIndex(src string) lineIndex {
	idx := lineIndex{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

// span returns the Span of length bytes starting at offset.
func (idx lineIndex) span(src string, offset, length int) Span {
	offset = max(0, min(offset, len(src)))
	length = max(0, min(length, len(src)-offset))
	line := sort.Search(len(idx), func(i int) bool { return idx[i] > offset }) - 1
	return Span{
		Offset: offset,
		Line:   line + 1,
		Column: utf8.RuneCountInString(src[idx[line]:offset]) + 1,
		Length: length,
	}
}

// lineText returns the text of the 1-based line n without its newline.
func (idx lineIndex) lineText(src string, n int) string {
	if n < 1 || n > len(idx) {
		return ""
	}
	start, end := idx[n-1], len(src)
	if n < len(idx) {
		end = idx[n] - 1
	}
	if end > start && src[end-1] == '\r' {
		end--
	}
	return src[start:end]
}
