package markup

import (
	"encoding/json"
	"errors"
	"strings"
)

// NodeType identifies the variant of a Node.
type NodeType int

const (
	TagNode NodeType = iota + 1
	TextNode
	CommentNode
)

func (t NodeType) String() string {
	switch t {
	case TagNode:
		return "tag"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	default:
		return "invalid"
	}
}

// Node is a parsed unit of the tree. It is one of *Tag, *Text or *Comment.
//
// Every node is owned by the slice that received it; nodes carry no parent
// pointers, so a tree can never contain a cycle.
type Node interface {
	Type() NodeType
	node()
}

// doctypeName is the name of the pseudo-tag produced for <!DOCTYPE ...>.
const doctypeName = "!DOCTYPE"

// Tag is an element. Name keeps the case it was written with. Children is
// always empty for void elements.
type Tag struct {
	Name       string
	Attributes []Attribute
	Children   []Node
}

// Attribute is a name/value pair of a Tag. Boolean attributes written
// without a value (e.g. disabled) get the value "true".
type Attribute struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Text is a run of character data between tags, trimmed of surrounding
// whitespace. Content is never empty.
type Text struct {
	Content string
}

// Comment holds the raw text between <!-- and -->.
type Comment struct {
	Content string
}

func (*Tag) Type() NodeType     { return TagNode }
func (*Text) Type() NodeType    { return TextNode }
func (*Comment) Type() NodeType { return CommentNode }

func (*Tag) node()     {}
func (*Text) node()    {}
func (*Comment) node() {}

// Attr returns the value of the first attribute with the given name.
func (t *Tag) Attr(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// IsVoid reports whether t is a void element (br, img, input, ...).
func (t *Tag) IsVoid() bool {
	return isVoid(t.Name)
}

// IsDoctype reports whether t stands for a <!DOCTYPE> declaration.
func (t *Tag) IsDoctype() bool {
	return t.Name == doctypeName
}

// Doctype returns the declared document type, e.g. "html".
func (t *Tag) Doctype() string {
	if !t.IsDoctype() || len(t.Attributes) == 0 {
		return ""
	}
	return t.Attributes[0].Name
}

// ParseResult is what Parse returns for one document.
type ParseResult struct {
	// Nodes are the top-level nodes in the order they were encountered.
	Nodes []Node `json:"nodes" yaml:"nodes"`

	// Warnings and Errors hold diagnostic messages in detection order.
	Warnings []string `json:"warnings" yaml:"warnings"`
	Errors   []string `json:"errors" yaml:"errors"`

	// Diagnostics holds both warnings and errors with their positions.
	Diagnostics []Diagnostic `json:"-" yaml:"-"`

	src    string
	source string
}

// Err returns all error-severity diagnostics joined into one error, or nil
// when the document had none. Each joined error is a *ParseError.
func (r ParseResult) Err() error {
	var errs []error
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			errs = append(errs, r.newParseError(d))
		}
	}
	return errors.Join(errs...)
}

// TextContent returns the text of n and its descendants joined by single
// spaces. Comments are ignored.
func TextContent(n Node) string {
	var parts []string
	_ = Walk([]Node{n}, func(n Node, _ int) error {
		if t, ok := n.(*Text); ok {
			parts = append(parts, t.Content)
		}
		return nil
	})
	return strings.Join(parts, " ")
}

type tagView struct {
	Type       string      `json:"type" yaml:"type"`
	Name       string      `json:"name" yaml:"name"`
	Attributes []Attribute `json:"attributes" yaml:"attributes"`
	Children   []Node      `json:"children" yaml:"children"`
}

type contentView struct {
	Type    string `json:"type" yaml:"type"`
	Content string `json:"content" yaml:"content"`
}

func (t *Tag) view() tagView {
	v := tagView{Type: TagNode.String(), Name: t.Name, Attributes: t.Attributes, Children: t.Children}
	if v.Attributes == nil {
		v.Attributes = []Attribute{}
	}
	if v.Children == nil {
		v.Children = []Node{}
	}
	return v
}

func (t *Tag) MarshalJSON() ([]byte, error) { return json.Marshal(t.view()) }

// MarshalYAML implements the goccy/go-yaml InterfaceMarshaler.
func (t *Tag) MarshalYAML() (any, error) { return t.view(), nil }

func (t *Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(contentView{Type: TextNode.String(), Content: t.Content})
}

func (t *Text) MarshalYAML() (any, error) {
	return contentView{Type: TextNode.String(), Content: t.Content}, nil
}

func (c *Comment) MarshalJSON() ([]byte, error) {
	return json.Marshal(contentView{Type: CommentNode.String(), Content: c.Content})
}

func (c *Comment) MarshalYAML() (any, error) {
	return contentView{Type: CommentNode.String(), Content: c.Content}, nil
}
