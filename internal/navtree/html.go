package navtree

import (
	"fmt"
	"html/template"
	"strings"
)

// RenderHTML renders the tree as nested <ul><li> markup for a sidebar.
// activeLink marks the matching entry and expands its ancestors. basePath is
// prefixed to every link (e.g. "../" for a page one level deep).
func RenderHTML(root *Node, activeLink, basePath string) string {
	if root == nil {
		return ""
	}
	expanded := activeAncestors(root, activeLink)

	var b strings.Builder
	b.WriteString("<ul>\n")
	renderNode(&b, root, activeLink, basePath, expanded)
	b.WriteString("</ul>\n")
	return b.String()
}

// activeAncestors returns the nodes on the path to the first entry linking
// to activeLink, excluding that entry.
func activeAncestors(root *Node, activeLink string) map[*Node]bool {
	out := make(map[*Node]bool)
	if activeLink == "" {
		return out
	}
	var stack []*Node
	_ = Walk(root, func(n *Node, depth int) error {
		stack = append(stack[:depth], n)
		if n.Link == activeLink {
			for _, a := range stack[:depth] {
				out[a] = true
			}
			return errFound
		}
		return nil
	})
	return out
}

func renderNode(b *strings.Builder, n *Node, activeLink, basePath string, expanded map[*Node]bool) {
	href := template.HTMLEscapeString(basePath + n.Link)
	label := template.HTMLEscapeString(n.Label)
	active := ""
	if n.Link == activeLink && activeLink != "" {
		active = ` class="active"`
	}

	switch {
	case len(n.Children) > 0:
		state := ""
		if expanded[n] {
			state = " expanded"
		}
		fmt.Fprintf(b, `<li class="dir%s"><a href="%s"%s>%s</a>`+"\n", state, href, active, label)
		b.WriteString("<ul>\n")
		for _, c := range n.Children {
			renderNode(b, c, activeLink, basePath, expanded)
		}
		b.WriteString("</ul>\n</li>\n")
	case n.Script != "":
		fmt.Fprintf(b, `<li class="dir deferred" data-script="%s"><a href="%s"%s>%s</a></li>`+"\n",
			template.HTMLEscapeString(n.Script), href, active, label)
	default:
		fmt.Fprintf(b, `<li class="file"><a href="%s"%s>%s</a></li>`+"\n", href, active, label)
	}
}
