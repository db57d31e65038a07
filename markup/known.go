package markup

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// voidElements can never have children or a closing tag.
var voidElements = map[string]bool{
	"br":    true,
	"hr":    true,
	"img":   true,
	"input": true,
	"meta":  true,
	"link":  true,
	"embed": true,
	"param": true,
	"track": true,
	"wbr":   true,
}

func isVoid(name string) bool {
	return voidElements[strings.ToLower(name)]
}

// IsKnownTag reports whether name (in any case) appears in the HTML atom
// table. The table is advisory: it also lists attribute names, and the
// parser accepts unknown names regardless.
func IsKnownTag(name string) bool {
	if name == doctypeName {
		return true
	}
	return atom.Lookup([]byte(strings.ToLower(name))) != 0
}
