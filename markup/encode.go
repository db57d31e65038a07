package markup

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format selects how Encode writes a ParseResult.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatXML
	FormatHTML
	FormatDump
)

var formatNames = map[Format][]string{
	FormatJSON: {"json", "j"},
	FormatYAML: {"yaml", "y"},
	FormatXML:  {"xml", "x"},
	FormatHTML: {"html", "h"},
	FormatDump: {"dump", "d", "tree"},
}

func (f Format) String() string {
	if names, ok := formatNames[f]; ok {
		return names[0]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts a format name or its one-letter abbreviation.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, names := range formatNames {
		for _, name := range names {
			if s == name {
				return f, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

// ContentType is the media type of documents written in f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatXML:
		return "application/xml"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Encode writes res to w. JSON, YAML and XML carry the nodes together with
// the warnings and errors; HTML and the dump format carry the nodes only.
func Encode(w io.Writer, res ParseResult, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatYAML:
		b, err := yaml.Marshal(res)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	case FormatXML:
		return EncodeXML(w, res)
	case FormatHTML:
		return Render(w, res.Nodes)
	case FormatDump:
		return Dump(w, res.Nodes)
	default:
		return fmt.Errorf("unknown format %v", f)
	}
}
