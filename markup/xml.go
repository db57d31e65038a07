package markup

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"
)

// EncodeXML writes res as an XML document:
//
//	<document>
//	  <nodes>
//	    <tag name="p">
//	      <attribute name="class" value="note"/>
//	      <text>hello</text>
//	    </tag>
//	  </nodes>
//	  <diagnostics>
//	    <warning line="1" column="1" offset="0">unclosed tag: &lt;p&gt;</warning>
//	  </diagnostics>
//	</document>
//
// Tag names are carried in attributes since markup names such as
// "!DOCTYPE" are not valid XML names.
func EncodeXML(w io.Writer, res ParseResult) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("document")

	nodes := root.CreateElement("nodes")
	for _, n := range res.Nodes {
		if err := appendXML(nodes, n); err != nil {
			return err
		}
	}

	diags := root.CreateElement("diagnostics")
	for _, d := range res.Diagnostics {
		el := diags.CreateElement(d.Severity.String())
		el.CreateAttr("line", strconv.Itoa(d.Span.Line))
		el.CreateAttr("column", strconv.Itoa(d.Span.Column))
		el.CreateAttr("offset", strconv.Itoa(d.Span.Offset))
		el.SetText(d.Message)
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func appendXML(parent *etree.Element, n Node) error {
	switch n := n.(type) {
	case *Tag:
		el := parent.CreateElement("tag")
		el.CreateAttr("name", n.Name)
		for _, a := range n.Attributes {
			attr := el.CreateElement("attribute")
			attr.CreateAttr("name", a.Name)
			attr.CreateAttr("value", a.Value)
		}
		for _, c := range n.Children {
			if err := appendXML(el, c); err != nil {
				return err
			}
		}
	case *Text:
		parent.CreateElement("text").SetText(n.Content)
	case *Comment:
		parent.CreateElement("comment").SetText(n.Content)
	default:
		return fmt.Errorf("unexpected node type %T", n)
	}
	return nil
}
