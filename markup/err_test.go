package markup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseResult_Err(t *testing.T) {
	require.NoError(t, Parse(`<p>fine</p>`).Err())

	// Warnings alone do not make an error.
	require.NoError(t, Parse(`<p>unclosed`).Err())

	res := Parse("<div>\n  <1>\n</div>", WithSourceName("page.html"))
	err := res.Err()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMalformed)
	require.Equal(t, "page.html:2:3: malformed opening tag at position 8", err.Error())

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, "page.html", pe.Source)
	require.Equal(t, SeverityError, pe.Diagnostic.Severity)
}

func TestParseResult_Err_joinsAll(t *testing.T) {
	res := Parse(`< a < b`)
	require.Len(t, res.Errors, 2)

	err := res.Err()
	require.Equal(t, "1:1: malformed tag at position 0\n1:5: malformed tag at position 4", err.Error())
}

func TestParseError_SourceContext(t *testing.T) {
	res := Parse("<div>\n  <1>\n</div>\n<p>tail</p>")

	var pe *ParseError
	require.True(t, errors.As(res.Err(), &pe))

	got := pe.SourceContext(1)
	require.Equal(t, &SourceContext{
		Lines: []SourceLine{
			{Number: 1, Text: "<div>"},
			{Number: 2, Text: "  <1>"},
			{Number: 3, Text: "</div>"},
		},
		ErrorLine:   2,
		ErrorColumn: 3,
		ErrorLength: 1,
	}, got)

	// The window is clipped at both ends of the document.
	got = pe.SourceContext(10)
	require.Len(t, got.Lines, 4)
	require.Equal(t, 1, got.Lines[0].Number)
	require.Equal(t, "<p>tail</p>", got.Lines[3].Text)

	require.Nil(t, (&ParseError{}).SourceContext(1))
}

func TestLineIndex(t *testing.T) {
	src := "ab\r\nçd\n\nx"
	idx := newLineIndex(src)
	require.Len(t, idx, 4)

	require.Equal(t, Span{Offset: 0, Line: 1, Column: 1, Length: 2}, idx.span(src, 0, 2))
	require.Equal(t, Span{Offset: 6, Line: 2, Column: 2, Length: 1}, idx.span(src, 6, 1))
	require.Equal(t, Span{Offset: 9, Line: 4, Column: 1, Length: 1}, idx.span(src, 9, 1))
	// Out of range offsets and lengths are clamped.
	require.Equal(t, Span{Offset: 10, Line: 4, Column: 2, Length: 0}, idx.span(src, 99, 5))

	require.Equal(t, "ab", idx.lineText(src, 1))
	require.Equal(t, "çd", idx.lineText(src, 2))
	require.Equal(t, "", idx.lineText(src, 3))
	require.Equal(t, "x", idx.lineText(src, 4))
	require.Equal(t, "", idx.lineText(src, 5))
}
