package markup

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// queryEnv is what a query expression sees for each tag.
type queryEnv struct {
	// Name is the tag name as written.
	Name string
	// Attrs maps attribute names to values. For repeated names the first
	// value wins.
	Attrs map[string]string
	// Depth is 0 for top-level tags.
	Depth int
	// Text is TextContent of the tag.
	Text string
	// Children is the number of child nodes.
	Children int
	// Void reports whether the tag is a void element.
	Void bool
}

// Attr returns the value of the named attribute, or "".
func (e queryEnv) Attr(name string) string { return e.Attrs[name] }

// Has reports whether the tag carries the named attribute.
func (e queryEnv) Has(name string) bool {
	_, ok := e.Attrs[name]
	return ok
}

func newQueryEnv(t *Tag, depth int) queryEnv {
	env := queryEnv{
		Name:     t.Name,
		Attrs:    make(map[string]string, len(t.Attributes)),
		Depth:    depth,
		Text:     TextContent(t),
		Children: len(t.Children),
		Void:     t.IsVoid(),
	}
	for _, a := range t.Attributes {
		if _, ok := env.Attrs[a.Name]; !ok {
			env.Attrs[a.Name] = a.Value
		}
	}
	return env
}

// Query is a compiled boolean expression over tags, written in the
// expr-lang language, e.g.
//
//	Name == "a" && Has("href")
//	Name in ["h1", "h2"] && Depth < 3
//	Attr("class") contains "note"
type Query struct {
	src  string
	prog *vm.Program
}

// CompileQuery compiles src. The expression must evaluate to a bool.
func CompileQuery(src string) (*Query, error) {
	prog, err := expr.Compile(src, expr.Env(queryEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile query %q: %w", src, err)
	}
	return &Query{src: src, prog: prog}, nil
}

func (q *Query) String() string { return q.src }

// Match evaluates q for t found at the given depth.
func (q *Query) Match(t *Tag, depth int) (bool, error) {
	out, err := expr.Run(q.prog, newQueryEnv(t, depth))
	if err != nil {
		return false, fmt.Errorf("run query %q on <%s>: %w", q.src, t.Name, err)
	}
	return out.(bool), nil
}

// Select returns the tags in nodes that match q, in document order.
func (q *Query) Select(nodes []Node) ([]*Tag, error) {
	var found []*Tag
	err := Walk(nodes, func(n Node, depth int) error {
		t, ok := n.(*Tag)
		if !ok {
			return nil
		}
		m, err := q.Match(t, depth)
		if err != nil {
			return err
		}
		if m {
			found = append(found, t)
		}
		return nil
	})
	return found, err
}
