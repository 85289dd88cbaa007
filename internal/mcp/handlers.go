package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/doxynav/internal/navtree"
)

const noDocument = "No navigation data loaded. Start the server with `doxynav mcp <navtreedata.js>`."

func (s *Server) document() *navtree.Document {
	if s.source == nil {
		return nil
	}
	doc, _ := s.source.Current()
	return doc
}

// handleGetNavTree returns the tree, or a subtree, as an outline or JSON.
func (s *Server) handleGetNavTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := s.document()
	if doc == nil {
		return mcp.NewToolResultError(noDocument), nil
	}

	root := doc.Root
	if link := request.GetString("link", ""); link != "" {
		if root = navtree.FindByLink(doc.Root, link); root == nil {
			return mcp.NewToolResultError(fmt.Sprintf("No navigation node links to %q.", link)), nil
		}
	}

	switch format := request.GetString("format", "outline"); format {
	case "outline":
		return mcp.NewToolResultText(navtree.WriteOutline(root)), nil
	case "json":
		data, err := json.MarshalIndent(root, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding tree: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}
}

// handleGetChildren lists the children of the node linking to a page.
func (s *Server) handleGetChildren(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	link, err := request.RequireString("link")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: link"), nil
	}
	doc := s.document()
	if doc == nil {
		return mcp.NewToolResultError(noDocument), nil
	}

	n := navtree.FindByLink(doc.Root, link)
	if n == nil {
		return mcp.NewToolResultError(fmt.Sprintf("No navigation node links to %q.", link)), nil
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(navtree.Breadcrumb(doc.Root, link), " > "))
	sb.WriteString("\n")
	children := doc.Children(n)
	switch {
	case n.Script != "":
		sb.WriteString(fmt.Sprintf("Children are loaded on demand from %s.js.\n", n.Script))
	case len(children) == 0:
		sb.WriteString("No children.\n")
	}
	for _, c := range children {
		sb.WriteString(fmt.Sprintf("- %s (%s)", c.Label, c.Link))
		switch {
		case c.Script != "":
			sb.WriteString(" [deferred: " + c.Script + "]")
		case len(c.Children) > 0:
			sb.WriteString(fmt.Sprintf(" [%d children]", len(c.Children)))
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetIndexEntry returns one navigation index entry.
func (s *Server) handleGetIndexEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pos, err := request.RequireInt("position")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: position"), nil
	}
	doc := s.document()
	if doc == nil {
		return mcp.NewToolResultError(noDocument), nil
	}

	entry, err := doc.Entry(pos)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(entry), nil
}

// handleFindIndexPage maps a page URL onto its navigation index page.
func (s *Server) handleFindIndexPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: url"), nil
	}
	doc := s.document()
	if doc == nil {
		return mcp.NewToolResultError(noDocument), nil
	}

	page := doc.Index.PageFor(url)
	script, err := doc.Index.ScriptName(page)
	if err != nil {
		return mcp.NewToolResultError("The navigation index is empty."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s is on index page %d (%s.js)", url, page, script)), nil
}

// handleGetUIString returns one viewer string.
func (s *Server) handleGetUIString(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: key"), nil
	}
	doc := s.document()
	if doc == nil {
		return mcp.NewToolResultError(noDocument), nil
	}

	key, err := navtree.ParseKey(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := doc.String(key)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(value), nil
}
