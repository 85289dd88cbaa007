package navtree

import (
	"bytes"
	"fmt"
	"strings"
)

// Encode writes doc back in the generator's navtreedata.js layout. A document
// loaded from generator output encodes to the same bytes it was loaded from.
func Encode(doc *Document) []byte {
	var b bytes.Buffer
	if doc.Header != "" {
		b.WriteString(doc.Header)
		b.WriteByte('\n')
	}

	b.WriteString("var " + declTree + " =\n[\n")
	if doc.Root != nil {
		writeEntry(&b, doc.Root, 1)
	}
	b.WriteString("\n];\n\n")

	b.WriteString("var " + declIndex + " =\n[\n")
	for i, e := range doc.Index.entries {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString(quote(e, '"'))
	}
	b.WriteString("\n];\n\n")

	fmt.Fprintf(&b, "var %s = %s;\n", declSyncOn, quote(doc.Strings.SyncOn, '\''))
	fmt.Fprintf(&b, "var %s = %s;", declSyncOff, quote(doc.Strings.SyncOff, '\''))
	if doc.FinalNewline {
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// EncodeScript writes nodes as the deferred child script name.js.
func EncodeScript(name string, nodes []*Node) []byte {
	var b bytes.Buffer
	b.WriteString("var " + name + " =\n[\n")
	for i, n := range nodes {
		if i > 0 {
			b.WriteString(",\n")
		}
		writeEntry(&b, n, 2)
	}
	b.WriteString("\n];\n")
	return b.Bytes()
}

func writeEntry(b *bytes.Buffer, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString("[ ")
	b.WriteString(quote(n.Label, '"'))
	b.WriteString(", ")
	b.WriteString(quote(n.Link, '"'))
	b.WriteString(", ")
	switch {
	case len(n.Children) > 0:
		b.WriteString("[\n")
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(",\n")
			}
			writeEntry(b, c, depth+1)
		}
		b.WriteString("\n" + indent + "] ]")
	case n.Script != "":
		b.WriteString(quote(n.Script, '"'))
		b.WriteString(" ]")
	default:
		b.WriteString("null ]")
	}
}

// quote renders s as a JavaScript string literal delimited by q. Non-ASCII
// text is written as is.
func quote(s string, q byte) string {
	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == rune(q) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x2028 || r == 0x2029:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
