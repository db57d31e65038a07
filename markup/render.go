package markup

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render writes nodes back out as HTML. Void elements are written in the
// self-closing form (<br/>), text is escaped and every attribute is written
// with a quoted value, so boolean attributes come out as name="true".
func Render(w io.Writer, nodes []Node) error {
	doc := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		hn, err := toHTML(n)
		if err != nil {
			return err
		}
		doc.AppendChild(hn)
	}
	return html.Render(w, doc)
}

// RenderString is Render into a string.
func RenderString(nodes []Node) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, nodes); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// toHTML converts n into a golang.org/x/net/html tree.
func toHTML(n Node) (*html.Node, error) {
	switch n := n.(type) {
	case *Tag:
		if n.IsDoctype() {
			return &html.Node{Type: html.DoctypeNode, Data: n.Doctype()}, nil
		}
		data := n.Name
		if n.IsVoid() {
			// html.Render only knows the lower-case void element names.
			data = strings.ToLower(data)
		}
		hn := &html.Node{
			Type:     html.ElementNode,
			Data:     data,
			DataAtom: atom.Lookup([]byte(data)),
		}
		for _, a := range n.Attributes {
			hn.Attr = append(hn.Attr, html.Attribute{Key: a.Name, Val: a.Value})
		}
		for _, c := range n.Children {
			hc, err := toHTML(c)
			if err != nil {
				return nil, err
			}
			hn.AppendChild(hc)
		}
		return hn, nil
	case *Text:
		return &html.Node{Type: html.TextNode, Data: n.Content}, nil
	case *Comment:
		return &html.Node{Type: html.CommentNode, Data: n.Content}, nil
	default:
		return nil, fmt.Errorf("unexpected node type %T", n)
	}
}
