package markup

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes nodes as an indented outline, one line per node or
// attribute:
//
//	| <div>
//	|   class="note"
//	|   "hello"
//	|   <!-- aside -->
//
// Attributes keep their source order. The format is meant for people and
// for line-oriented diffs, not for reading back.
func Dump(w io.Writer, nodes []Node) error {
	for _, n := range nodes {
		if err := dumpLevel(w, n, 0); err != nil {
			return err
		}
	}
	return nil
}

// DumpString is Dump into a string.
func DumpString(nodes []Node) string {
	var sb strings.Builder
	_ = Dump(&sb, nodes)
	return sb.String()
}

func dumpIndent(w io.Writer, level int) {
	_, _ = io.WriteString(w, "| ")
	for i := 0; i < level; i++ {
		_, _ = io.WriteString(w, "  ")
	}
}

func dumpLevel(w io.Writer, n Node, level int) error {
	dumpIndent(w, level)
	level++
	switch n := n.(type) {
	case *Tag:
		if n.IsDoctype() {
			_, _ = fmt.Fprintf(w, "<!DOCTYPE %s>\n", n.Doctype())
			return nil
		}
		_, _ = fmt.Fprintf(w, "<%s>\n", n.Name)
		for _, a := range n.Attributes {
			dumpIndent(w, level)
			_, _ = fmt.Fprintf(w, "%s=%q\n", a.Name, a.Value)
		}
		for _, c := range n.Children {
			if err := dumpLevel(w, c, level); err != nil {
				return err
			}
		}
	case *Text:
		_, _ = fmt.Fprintf(w, "%q\n", n.Content)
	case *Comment:
		_, _ = fmt.Fprintf(w, "<!-- %s -->\n", n.Content)
	default:
		return fmt.Errorf("unexpected node type %T", n)
	}
	return nil
}
