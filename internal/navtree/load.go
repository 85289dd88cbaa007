package navtree

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// Document is everything a navtreedata.js file declares. It is built once by
// Load and never modified afterwards, so it can be shared between readers.
type Document struct {
	// Header is the leading block comment (license notice), without the
	// newline that follows it.
	Header       string  `json:"header,omitempty" yaml:"header,omitempty"`
	Root         *Node   `json:"root" yaml:"root"`
	Index        Index   `json:"index" yaml:"index"`
	Strings      Strings `json:"strings" yaml:"strings"`
	FinalNewline bool    `json:"final_newline,omitempty" yaml:"final_newline,omitempty"`
}

// Children returns the ordered children of n.
func (d *Document) Children(n *Node) []*Node { return GetChildren(n) }

// Entry returns index entry pos.
func (d *Document) Entry(pos int) (string, error) { return d.Index.Get(pos) }

// String returns the UI string for key.
func (d *Document) String(key Key) (string, error) { return d.Strings.Get(key) }

// Load parses a navtreedata.js blob. It either returns a complete Document or
// an error; a *MalformedInputError when the top-level declarations are not
// exactly NAVTREE, NAVTREEINDEX, SYNCONMSG and SYNCOFFMSG, or a *ParseError
// when a tree entry is invalid.
func Load(src []byte) (*Document, error) {
	decls, err := declarations(src)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{declTree, declIndex, declSyncOn, declSyncOff} {
		if _, ok := decls[name]; !ok {
			return nil, &MalformedInputError{Reason: "missing declaration " + name}
		}
	}
	for name := range decls {
		switch name {
		case declTree, declIndex, declSyncOn, declSyncOff:
		default:
			return nil, &MalformedInputError{Reason: "unexpected declaration " + name}
		}
	}

	doc := &Document{
		Header:       leadingComment(src),
		FinalNewline: bytes.HasSuffix(src, []byte("\n")),
	}

	tree, ok := decls[declTree].([]any)
	if !ok {
		return nil, &MalformedInputError{Reason: declTree + " is not an array"}
	}
	if len(tree) != 1 {
		return nil, &MalformedInputError{Reason: fmt.Sprintf("%s must hold exactly one root entry, got %d", declTree, len(tree))}
	}
	if doc.Root, err = ParseTree(tree[0]); err != nil {
		return nil, err
	}

	rawIndex, ok := decls[declIndex].([]any)
	if !ok {
		return nil, &MalformedInputError{Reason: declIndex + " is not an array"}
	}
	entries := make([]string, len(rawIndex))
	for i, v := range rawIndex {
		s, ok := v.(string)
		if !ok {
			return nil, &MalformedInputError{Reason: fmt.Sprintf("%s[%d] is not a string", declIndex, i)}
		}
		entries[i] = s
	}
	doc.Index = Index{entries: entries}

	if doc.Strings.SyncOn, ok = decls[declSyncOn].(string); !ok {
		return nil, &MalformedInputError{Reason: declSyncOn + " is not a string"}
	}
	if doc.Strings.SyncOff, ok = decls[declSyncOff].(string); !ok {
		return nil, &MalformedInputError{Reason: declSyncOff + " is not a string"}
	}
	return doc, nil
}

// LoadScript parses a deferred child script, a file holding a single
// `var <name> = [ entries... ];` declaration, and returns its entries.
func LoadScript(name string, src []byte) ([]*Node, error) {
	decls, err := declarations(src)
	if err != nil {
		return nil, err
	}
	raw, ok := decls[name]
	if !ok || len(decls) != 1 {
		return nil, &MalformedInputError{Reason: "script must declare only " + name}
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &MalformedInputError{Reason: name + " is not an array"}
	}
	var nodes []*Node
	for i, entry := range list {
		n, err := parseNode(entry, entryPath(name, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// declarations returns the value of every top-level var/let/const binding.
// Anything other than plain declarations is rejected.
func declarations(src []byte) (map[string]any, error) {
	ast, err := js.Parse(parse.NewInputBytes(src), js.Options{})
	if err != nil {
		return nil, &MalformedInputError{Reason: "invalid script", Err: err}
	}

	decls := make(map[string]any)
	for _, stmt := range ast.BlockStmt.List {
		switch s := stmt.(type) {
		case *js.EmptyStmt:
			continue
		case *js.VarDecl:
			for _, b := range s.List {
				v, ok := b.Binding.(*js.Var)
				if !ok {
					return nil, &MalformedInputError{Reason: "destructuring declarations are not supported"}
				}
				name := string(v.Data)
				if b.Default == nil {
					return nil, &MalformedInputError{Reason: name + " is declared without a value"}
				}
				if _, dup := decls[name]; dup {
					return nil, &MalformedInputError{Reason: "duplicate declaration " + name}
				}
				val, err := literalValue(b.Default)
				if err != nil {
					return nil, &MalformedInputError{Reason: "value of " + name, Err: err}
				}
				decls[name] = val
			}
		default:
			return nil, &MalformedInputError{Reason: fmt.Sprintf("unexpected top-level statement %T", stmt)}
		}
	}
	return decls, nil
}

// rawLiteral is a number, boolean or other non-string literal. It is kept
// opaque so the caller that expected a string can report where it was found.
type rawLiteral string

// literalValue converts an array/string/null literal into []any, string or
// nil. Other literals come back as rawLiteral.
func literalValue(e js.IExpr) (any, error) {
	switch v := e.(type) {
	case nil:
		return nil, nil
	case *js.LiteralExpr:
		switch v.TokenType {
		case js.StringToken:
			return unquote(v.Data)
		case js.NullToken:
			return nil, nil
		}
		return rawLiteral(v.Data), nil
	case *js.ArrayExpr:
		out := make([]any, 0, len(v.List))
		for _, el := range v.List {
			if el.Spread {
				return nil, fmt.Errorf("spread elements are not supported")
			}
			item, err := literalValue(el.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported expression %T", e)
}

// unquote decodes a quoted JavaScript string literal.
func unquote(lit []byte) (string, error) {
	if len(lit) < 2 || (lit[0] != '"' && lit[0] != '\'') || lit[len(lit)-1] != lit[0] {
		return "", fmt.Errorf("bad string literal %s", lit)
	}
	body := lit[1 : len(lit)-1]
	if bytes.IndexByte(body, '\\') < 0 {
		return string(body), nil
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("dangling escape in %s", lit)
		}
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case 'x':
			if i+2 >= len(body) {
				return "", fmt.Errorf("short \\x escape in %s", lit)
			}
			r, err := strconv.ParseUint(string(body[i+1:i+3]), 16, 8)
			if err != nil {
				return "", fmt.Errorf("bad \\x escape in %s", lit)
			}
			b.WriteRune(rune(r))
			i += 2
		case 'u':
			r, n, err := unicodeEscape(body[i+1:])
			if err != nil {
				return "", fmt.Errorf("%w in %s", err, lit)
			}
			i += n
			if utf16.IsSurrogate(r) && i+2 < len(body) && body[i+1] == '\\' && body[i+2] == 'u' {
				if r2, n2, err := unicodeEscape(body[i+3:]); err == nil {
					if dec := utf16.DecodeRune(r, r2); dec != unicode.ReplacementChar {
						r = dec
						i += 2 + n2
					}
				}
			}
			b.WriteRune(r)
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String(), nil
}

// unicodeEscape decodes the part of a \u escape after the "u", either four
// hex digits or a braced code point, and returns how many bytes it used.
func unicodeEscape(s []byte) (rune, int, error) {
	if len(s) > 0 && s[0] == '{' {
		end := bytes.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, fmt.Errorf("bad \\u{} escape")
		}
		r, err := strconv.ParseUint(string(s[1:end]), 16, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("bad \\u{} escape")
		}
		return rune(r), end + 1, nil
	}
	if len(s) < 4 {
		return 0, 0, fmt.Errorf("short \\u escape")
	}
	r, err := strconv.ParseUint(string(s[:4]), 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("bad \\u escape")
	}
	return rune(r), 4, nil
}

// leadingComment returns the block comment at the very start of src.
func leadingComment(src []byte) string {
	if !bytes.HasPrefix(src, []byte("/*")) {
		return ""
	}
	end := bytes.Index(src[2:], []byte("*/"))
	if end < 0 {
		return ""
	}
	return string(src[:end+4])
}
