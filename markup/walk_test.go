package markup

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	doc := Parse(`<div><p>a<b>b</b></p><!-- c --></div>d`)

	var visited []string
	err := Walk(doc.Nodes, func(n Node, depth int) error {
		switch n := n.(type) {
		case *Tag:
			visited = append(visited, fmt.Sprintf("%d:<%s>", depth, n.Name))
		case *Text:
			visited = append(visited, fmt.Sprintf("%d:%s", depth, n.Content))
		case *Comment:
			visited = append(visited, fmt.Sprintf("%d:comment", depth))
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"0:<div>", "1:<p>", "2:a", "2:<b>", "3:b", "1:comment", "0:d"}, visited)
}

func TestWalk_skipChildren(t *testing.T) {
	doc := Parse(`<div><p>skipped</p><span>kept</span></div>`)

	var texts []string
	err := Walk(doc.Nodes, func(n Node, _ int) error {
		if tag, ok := n.(*Tag); ok && tag.Name == "p" {
			return SkipChildren
		}
		if text, ok := n.(*Text); ok {
			texts = append(texts, text.Content)
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"kept"}, texts)
}

func TestWalk_stopsOnError(t *testing.T) {
	doc := Parse(`<a></a><b></b><c></c>`)
	stop := errors.New("stop")

	var count int
	err := Walk(doc.Nodes, func(n Node, _ int) error {
		count++
		if n.(*Tag).Name == "b" {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 2, count)
}

func TestFind(t *testing.T) {
	doc := Parse(`<div><p>1</p><section><p>2</p><P>3</P></section></div>`)

	found := Find(doc.Nodes, "p")
	require.Len(t, found, 2)
	require.Equal(t, "1", TextContent(found[0]))
	require.Equal(t, "2", TextContent(found[1]))
	require.Len(t, Find(doc.Nodes, "P"), 1)
}

func TestTextContent(t *testing.T) {
	doc := Parse(`<p>Hello, <b>big</b> <!-- not this --> world</p>`)
	require.Equal(t, "Hello, big world", TextContent(doc.Nodes[0]))
	require.Equal(t, "", TextContent(&Comment{Content: "x"}))
}
