package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/doxynav/internal/navtree"
)

const testNav = `var NAVTREE =
[
  [ "Examen", "index.html", [
    [ "General Description", "index.html#genDesc", null ],
    [ "Topics", "topics.html", "topics" ],
    [ "Files", "files.html", [
      [ "File List", "files.html", "files_dup" ]
    ] ]
  ] ]
];

var NAVTREEINDEX =
[
"_examen_8c.html",
"globals_defs.html"
];

var SYNCONMSG = 'click to disable panel synchronisation';
var SYNCOFFMSG = 'click to enable panel synchronisation';
`

// staticSource serves a fixed document.
type staticSource struct {
	doc *navtree.Document
}

func (s staticSource) Current() (*navtree.Document, int) { return s.doc, 1 }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	doc, err := navtree.Load([]byte(testNav))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return NewServer(staticSource{doc: doc})
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// extractText gets the text content from a CallToolResult.
func extractText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"get_nav_tree", getNavTreeTool, "get_nav_tree"},
		{"get_children", getChildrenTool, "get_children"},
		{"get_index_entry", getIndexEntryTool, "get_index_entry"},
		{"find_index_page", findIndexPageTool, "find_index_page"},
		{"get_ui_string", getUIStringTool, "get_ui_string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := newTestServer(t)
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
}

func TestHandleGetNavTree(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	t.Run("outline", func(t *testing.T) {
		result, err := srv.handleGetNavTree(ctx, call(map[string]any{}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := extractText(result)
		if !strings.HasPrefix(text, "- [Examen](index.html)") {
			t.Errorf("outline should start at the root:\n%s", text)
		}
		if !strings.Contains(text, `"topics"`) {
			t.Errorf("outline should carry the deferred script:\n%s", text)
		}
	})

	t.Run("json subtree", func(t *testing.T) {
		result, _ := srv.handleGetNavTree(ctx, call(map[string]any{"link": "files.html", "format": "json"}))
		if result.IsError {
			t.Fatalf("unexpected tool error: %s", extractText(result))
		}
		if !strings.Contains(extractText(result), `"label": "Files"`) {
			t.Errorf("unexpected subtree:\n%s", extractText(result))
		}
	})

	t.Run("unknown link", func(t *testing.T) {
		result, _ := srv.handleGetNavTree(ctx, call(map[string]any{"link": "nope.html"}))
		if !result.IsError {
			t.Error("expected error for unknown link")
		}
	})
}

func TestHandleGetChildren(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	result, err := srv.handleGetChildren(ctx, call(map[string]any{"link": "index.html"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := extractText(result)
	for _, want := range []string{"- General Description (index.html#genDesc)", "[deferred: topics]", "- Files (files.html) [1 children]"} {
		if !strings.Contains(text, want) {
			t.Errorf("children output missing %q:\n%s", want, text)
		}
	}

	result, _ = srv.handleGetChildren(ctx, call(map[string]any{"link": "topics.html"}))
	if !strings.Contains(extractText(result), "topics.js") {
		t.Errorf("deferred node should name its script:\n%s", extractText(result))
	}

	result, _ = srv.handleGetChildren(ctx, call(map[string]any{}))
	if !result.IsError {
		t.Error("expected error for missing link")
	}
}

func TestHandleGetIndexEntry(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	tests := []struct {
		position any
		want     string
		wantErr  bool
	}{
		{float64(0), "_examen_8c.html", false},
		{float64(1), "globals_defs.html", false},
		{float64(2), "", true},
		{float64(-1), "", true},
	}
	for _, tt := range tests {
		result, err := srv.handleGetIndexEntry(ctx, call(map[string]any{"position": tt.position}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError != tt.wantErr {
			t.Errorf("position %v: IsError = %v, want %v", tt.position, result.IsError, tt.wantErr)
			continue
		}
		if !tt.wantErr && extractText(result) != tt.want {
			t.Errorf("position %v = %q, want %q", tt.position, extractText(result), tt.want)
		}
	}
}

func TestHandleFindIndexPage(t *testing.T) {
	srv := newTestServer(t)
	result, _ := srv.handleFindIndexPage(context.Background(), call(map[string]any{"url": "files.html"}))
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", extractText(result))
	}
	if !strings.Contains(extractText(result), "index page 0 (navtreeindex0.js)") {
		t.Errorf("unexpected result %q", extractText(result))
	}
}

func TestHandleGetUIString(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	result, _ := srv.handleGetUIString(ctx, call(map[string]any{"key": "sync-on"}))
	if got := extractText(result); got != "click to disable panel synchronisation" {
		t.Errorf("sync-on = %q", got)
	}

	result, _ = srv.handleGetUIString(ctx, call(map[string]any{"key": "title"}))
	if !result.IsError {
		t.Error("expected error for unknown key")
	}
}

func TestNoDocument(t *testing.T) {
	srv := NewServer(staticSource{})
	result, _ := srv.handleGetNavTree(context.Background(), call(map[string]any{}))
	if !result.IsError {
		t.Error("expected error without a document")
	}
}
