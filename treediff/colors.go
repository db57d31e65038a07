package treediff

import "github.com/fatih/color"

// NewColors returns the usual red/green palette. The colors are always
// emitted; callers decide whether the output is a terminal.
func NewColors() *Colors {
	return &Colors{
		Insert: ColorFunc(color.FgGreen),
		Delete: ColorFunc(color.FgRed),
	}
}

// ColorFunc returns a Sprintf-like function that always wraps its output in
// the given attributes.
func ColorFunc(attrs ...color.Attribute) func(string, ...any) string {
	c := color.New(attrs...)
	c.EnableColor()
	return c.SprintfFunc()
}
