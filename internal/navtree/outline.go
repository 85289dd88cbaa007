package navtree

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ParseOutline reads a tree from a markdown outline: a bullet list holding a
// single root item, where every item starts with a link and may contain a
// nested list of children. A link title names a deferred script:
//
//	- [Examen](index.html)
//	  - [General Description](index.html#genDesc)
//	  - [Topics](topics.html "topics")
func ParseOutline(src []byte) (*Node, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var list *ast.List
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		if l, ok := c.(*ast.List); ok {
			list = l
			break
		}
	}
	if list == nil {
		return nil, &MalformedInputError{Reason: "outline has no list"}
	}
	if list.ChildCount() != 1 {
		return nil, &MalformedInputError{Reason: fmt.Sprintf("outline must hold exactly one root item, got %d", list.ChildCount())}
	}
	return outlineItem(list.FirstChild(), src, "outline[0]")
}

func outlineItem(item ast.Node, src []byte, path string) (*Node, error) {
	var link *ast.Link
	var sub *ast.List
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.List:
			if sub == nil {
				sub = v
			}
		default:
			if link == nil {
				link = firstLink(v)
			}
		}
	}
	if link == nil {
		return nil, &ParseError{Path: path, Reason: "missing link"}
	}

	n := &Node{
		Label:  linkText(link, src),
		Link:   string(link.Destination),
		Script: string(link.Title),
	}
	if sub == nil {
		return n, nil
	}
	if n.Script != "" {
		return nil, &ParseError{Path: path, Reason: "node has both children and a script"}
	}
	i := 0
	for c := sub.FirstChild(); c != nil; c = c.NextSibling() {
		child, err := outlineItem(c, src, entryPath(path, i))
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
		i++
	}
	return n, nil
}

func firstLink(n ast.Node) *ast.Link {
	var found *ast.Link
	_ = ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if l, ok := n.(*ast.Link); ok && entering {
			found = l
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

// linkText returns the label of a link. Code spans and inline HTML are kept
// with their markup.
func linkText(l *ast.Link, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(l, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.CodeSpan:
			b.WriteByte('`')
			for c := v.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					b.Write(t.Segment.Value(src))
				}
			}
			b.WriteByte('`')
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			b.Write(v.Segments.Value(src))
		case *ast.Text:
			b.WriteString(unescapeText(v.Segment.Value(src)))
			if v.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// unescapeText decodes backslash escapes and character references in a
// markdown text segment.
func unescapeText(raw []byte) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '\\' && i+1 < len(raw) && util.IsPunct(raw[i+1]):
			i++
			b.WriteByte(raw[i])
		case c == '&':
			end := bytes.IndexByte(raw[i:min(len(raw), i+34)], ';')
			if end > 1 {
				ref := raw[i : i+end+1]
				if dec := util.ResolveNumericReferences(util.ResolveEntityNames(ref)); !bytes.Equal(dec, ref) {
					b.Write(dec)
					i += end
					continue
				}
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// WriteOutline renders root as a markdown outline readable by ParseOutline.
func WriteOutline(root *Node) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	writeOutlineItem(&b, root, 0)
	return b.String()
}

// labelEscaper backslash-escapes every character that could open inline
// markup inside link text.
var labelEscaper = strings.NewReplacer(
	`\`, `\\`, `[`, `\[`, `]`, `\]`, `*`, `\*`, `_`, `\_`, "`", "\\`",
	`<`, `\<`, `>`, `\>`, `&`, `\&`, `!`, `\!`, `~`, `\~`,
)

func writeOutlineItem(b *strings.Builder, n *Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, "- [%s](%s", labelEscaper.Replace(n.Label), outlineDestination(n.Link))
	if n.Script != "" {
		fmt.Fprintf(b, " %q", n.Script)
	}
	b.WriteString(")\n")
	for _, c := range n.Children {
		writeOutlineItem(b, c, depth+1)
	}
}

func outlineDestination(link string) string {
	if link == "" || strings.ContainsAny(link, " ()") {
		return "<" + link + ">"
	}
	return link
}
