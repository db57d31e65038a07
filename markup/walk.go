package markup

import "errors"

// SkipChildren can be returned from a WalkFunc to skip the children of the
// tag it was called with.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node visited by Walk. Depth is 0 for the
// nodes passed to Walk.
type WalkFunc func(n Node, depth int) error

// Walk visits nodes and their descendants depth-first, in document order.
// It stops at the first error returned by fn other than SkipChildren and
// returns it.
func Walk(nodes []Node, fn WalkFunc) error {
	return walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn WalkFunc) error {
	for _, n := range nodes {
		err := fn(n, depth)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if t, ok := n.(*Tag); ok {
			if err := walk(t.Children, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Find returns every tag named name, in document order. Names are compared
// exactly.
func Find(nodes []Node, name string) []*Tag {
	var found []*Tag
	_ = Walk(nodes, func(n Node, _ int) error {
		if t, ok := n.(*Tag); ok && t.Name == name {
			found = append(found, t)
		}
		return nil
	})
	return found
}
