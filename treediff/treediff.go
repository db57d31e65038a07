// Package treediff compares two parsed documents. The trees are flattened
// with markup.Dump and compared line by line, so a change to one attribute or
// text run shows up as a single changed line.
package treediff

import (
	"fmt"
	"io"
	"strings"

	"github.com/dpotapov/toyhtml/markup"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op says what happened to a Line going from the old tree to the new one.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (op Op) prefix() string {
	switch op {
	case Insert:
		return "+ "
	case Delete:
		return "- "
	default:
		return "  "
	}
}

// Line is one line of the Dump outline.
type Line struct {
	Op   Op
	Text string
}

func (l Line) String() string {
	return l.Op.prefix() + l.Text
}

// Result is the line diff of two trees.
type Result struct {
	Lines []Line
}

// Diff compares the old and new node lists.
func Diff(from, to []markup.Node) Result {
	return Strings(markup.DumpString(from), markup.DumpString(to))
}

// Strings diffs two texts line by line.
func Strings(from, to string) Result {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var res Result
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text == "" {
				continue
			}
			res.Lines = append(res.Lines, Line{Op: op, Text: strings.TrimSuffix(text, "\n")})
		}
	}
	return res
}

// Changed reports whether the trees differ.
func (r Result) Changed() bool {
	for _, l := range r.Lines {
		if l.Op != Equal {
			return true
		}
	}
	return false
}

// Stats counts inserted and deleted lines.
func (r Result) Stats() (inserted, deleted int) {
	for _, l := range r.Lines {
		switch l.Op {
		case Insert:
			inserted++
		case Delete:
			deleted++
		}
	}
	return inserted, deleted
}

// Colors maps each Op to the function that paints its lines. A nil
// function leaves lines of that kind unpainted.
type Colors struct {
	Equal  func(string, ...any) string
	Insert func(string, ...any) string
	Delete func(string, ...any) string
}

type formatConfig struct {
	context int
	colors  *Colors
}

// FormatOption configures Result.Format.
type FormatOption func(*formatConfig)

// WithContext keeps only n unchanged lines around each change. Longer runs
// of unchanged lines are replaced by a single "..." line. A negative n keeps
// everything, which is the default.
func WithContext(n int) FormatOption {
	return func(c *formatConfig) { c.context = n }
}

// WithColors paints the output.
func WithColors(colors *Colors) FormatOption {
	return func(c *formatConfig) { c.colors = colors }
}

// Format writes r to w, one line per Line, prefixed with "+ ", "- " or two
// spaces.
func (r Result) Format(w io.Writer, opts ...FormatOption) error {
	cfg := formatConfig{context: -1}
	for _, opt := range opts {
		opt(&cfg)
	}

	keep := r.visible(cfg.context)
	skipping := false
	for i, l := range r.Lines {
		if !keep[i] {
			if !skipping {
				if _, err := io.WriteString(w, "...\n"); err != nil {
					return err
				}
			}
			skipping = true
			continue
		}
		skipping = false
		if _, err := fmt.Fprintln(w, cfg.colors.paint(l)); err != nil {
			return err
		}
	}
	return nil
}

// visible marks the lines that survive a context limit of n.
func (r Result) visible(n int) []bool {
	keep := make([]bool, len(r.Lines))
	if n < 0 {
		for i := range keep {
			keep[i] = true
		}
		return keep
	}
	for i, l := range r.Lines {
		if l.Op == Equal {
			continue
		}
		for j := max(0, i-n); j <= min(len(r.Lines)-1, i+n); j++ {
			keep[j] = true
		}
	}
	return keep
}

func (c *Colors) paint(l Line) string {
	if c == nil {
		return l.String()
	}
	var fn func(string, ...any) string
	switch l.Op {
	case Insert:
		fn = c.Insert
	case Delete:
		fn = c.Delete
	default:
		fn = c.Equal
	}
	if fn == nil {
		return l.String()
	}
	return fn("%s", l.String())
}
