package navtree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names an on-disk representation of a Document.
type Format string

const (
	FormatJS       Format = "js"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name. "yml" and "md" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "js", "javascript":
		return FormatJS, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown format %q: must be one of js, json, yaml, html, markdown", s)
}

// Marshal renders doc in the given format.
func Marshal(doc *Document, f Format) ([]byte, error) {
	switch f {
	case FormatJS:
		return Encode(doc), nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshalling json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("marshalling yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("marshalling yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatHTML:
		return []byte(RenderHTML(doc.Root, "", "")), nil
	case FormatMarkdown:
		return []byte(WriteOutline(doc.Root)), nil
	}
	return nil, fmt.Errorf("unsupported output format %q", f)
}

// Unmarshal reads a Document from data. Markdown input only carries the
// tree; its index is empty and its strings are left blank.
func Unmarshal(data []byte, f Format) (*Document, error) {
	switch f {
	case FormatJS:
		return Load(data)
	case FormatJSON:
		var w wireDoc
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, &MalformedInputError{Reason: "invalid json", Err: err}
		}
		return w.document()
	case FormatYAML:
		var w wireDoc
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, &MalformedInputError{Reason: "invalid yaml", Err: err}
		}
		return w.document()
	case FormatMarkdown:
		root, err := ParseOutline(data)
		if err != nil {
			return nil, err
		}
		return &Document{Root: root, FinalNewline: true}, nil
	}
	return nil, fmt.Errorf("unsupported input format %q", f)
}

// MarshalJSON writes the index as a plain array.
func (x Index) MarshalJSON() ([]byte, error) {
	if x.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(x.entries)
}

// UnmarshalJSON reads the index from a plain array.
func (x *Index) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &x.entries)
}

// MarshalYAML writes the index as a plain sequence.
func (x Index) MarshalYAML() (any, error) {
	if x.entries == nil {
		return []string{}, nil
	}
	return x.entries, nil
}

// UnmarshalYAML reads the index from a plain sequence.
func (x *Index) UnmarshalYAML(value *yaml.Node) error {
	return value.Decode(&x.entries)
}

// wireDoc mirrors Document with optional fields so that missing labels and
// links can be told apart from empty ones.
type wireDoc struct {
	Header       string    `json:"header" yaml:"header"`
	Root         *wireNode `json:"root" yaml:"root"`
	Index        []string  `json:"index" yaml:"index"`
	Strings      Strings   `json:"strings" yaml:"strings"`
	FinalNewline bool      `json:"final_newline" yaml:"final_newline"`
}

type wireNode struct {
	Label    *string     `json:"label" yaml:"label"`
	Link     *string     `json:"link" yaml:"link"`
	Script   string      `json:"script" yaml:"script"`
	Children []*wireNode `json:"children" yaml:"children"`
}

func (w *wireDoc) document() (*Document, error) {
	if w.Root == nil {
		return nil, &MalformedInputError{Reason: "missing root"}
	}
	if !validHeader(w.Header) {
		return nil, &MalformedInputError{Reason: "header must be a single /* ... */ comment"}
	}
	root, err := w.Root.node("root")
	if err != nil {
		return nil, err
	}
	return &Document{
		Header:       w.Header,
		Root:         root,
		Index:        NewIndex(w.Index),
		Strings:      w.Strings,
		FinalNewline: w.FinalNewline,
	}, nil
}

// validHeader reports whether h is empty or exactly one block comment, so
// that Encode writes a script Load accepts and reads back as the same header.
func validHeader(h string) bool {
	if h == "" {
		return true
	}
	if len(h) < 4 || !strings.HasPrefix(h, "/*") || !strings.HasSuffix(h, "*/") {
		return false
	}
	return !strings.Contains(h[2:len(h)-2], "*/")
}

func (w *wireNode) node(path string) (*Node, error) {
	if w == nil {
		return nil, &ParseError{Path: path, Reason: "entry is null"}
	}
	if w.Label == nil {
		return nil, &ParseError{Path: path, Reason: "missing label"}
	}
	if w.Link == nil {
		return nil, &ParseError{Path: path, Reason: "missing link"}
	}
	if w.Script != "" && len(w.Children) > 0 {
		return nil, &ParseError{Path: path, Reason: "node has both children and a script"}
	}
	n := &Node{Label: *w.Label, Link: *w.Link, Script: w.Script}
	for i, c := range w.Children {
		cn, err := c.node(fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, cn)
	}
	return n, nil
}
