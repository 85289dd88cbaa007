package mcp

import "github.com/mark3labs/mcp-go/mcp"

// getNavTreeTool defines the get_nav_tree MCP tool.
var getNavTreeTool = mcp.NewTool("get_nav_tree",
	mcp.WithDescription("Get the documentation navigation tree, or the subtree under one page."),
	mcp.WithString("link",
		mcp.Description("Link of the node to start from (default: the root)"),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default outline)"),
		mcp.Enum("outline", "json"),
	),
)

// getChildrenTool defines the get_children MCP tool.
var getChildrenTool = mcp.NewTool("get_children",
	mcp.WithDescription("List the direct children of the navigation node that links to a page."),
	mcp.WithString("link",
		mcp.Required(),
		mcp.Description("Page link of the parent node, e.g. index.html or files.html"),
	),
)

// getIndexEntryTool defines the get_index_entry MCP tool.
var getIndexEntryTool = mcp.NewTool("get_index_entry",
	mcp.WithDescription("Get the first page URL covered by one navigation index page."),
	mcp.WithNumber("position",
		mcp.Required(),
		mcp.Description("Zero-based position in the navigation index"),
	),
)

// findIndexPageTool defines the find_index_page MCP tool.
var findIndexPageTool = mcp.NewTool("find_index_page",
	mcp.WithDescription("Find which navigation index page, and which navtreeindex script, holds a page URL."),
	mcp.WithString("url",
		mcp.Required(),
		mcp.Description("Page URL, e.g. globals_defs.html"),
	),
)

// getUIStringTool defines the get_ui_string MCP tool.
var getUIStringTool = mcp.NewTool("get_ui_string",
	mcp.WithDescription("Get a localized string shown by the documentation viewer."),
	mcp.WithString("key",
		mcp.Required(),
		mcp.Description("String key"),
		mcp.Enum("sync-on", "sync-off"),
	),
)
