package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/doxynav/internal/navtree"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Source supplies the navigation document the tools answer from.
type Source interface {
	Current() (*navtree.Document, int)
}

// Server wraps an MCP server that exposes navigation data lookups.
type Server struct {
	source Source
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server reading from source.
func NewServer(source Source) *Server {
	s := &Server{source: source}

	s.mcp = server.NewMCPServer(
		"doxynav",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(getNavTreeTool, s.handleGetNavTree)
	s.mcp.AddTool(getChildrenTool, s.handleGetChildren)
	s.mcp.AddTool(getIndexEntryTool, s.handleGetIndexEntry)
	s.mcp.AddTool(findIndexPageTool, s.handleFindIndexPage)
	s.mcp.AddTool(getUIStringTool, s.handleGetUIString)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
