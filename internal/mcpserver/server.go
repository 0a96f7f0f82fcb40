// Package mcpserver exposes detection and loading to AI agents over the
// Model Context Protocol. Stdout carries MCP protocol messages, so all
// logging must go to stderr.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/vecscope/vecscope/internal/adapter"
	"github.com/vecscope/vecscope/internal/history"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server exposing vector-database inspection tools.
type Server struct {
	loader *adapter.Loader
	hist   *history.Store
	mcp    *server.MCPServer
}

// NewServer creates the MCP server. hist may be nil.
func NewServer(loader *adapter.Loader, hist *history.Store) *Server {
	s := &Server{
		loader: loader,
		hist:   hist,
	}

	s.mcp = server.NewMCPServer(
		"vecscope",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers.
func (s *Server) registerTools() {
	s.mcp.AddTool(detectDatabaseTool, s.handleDetectDatabase)
	s.mcp.AddTool(loadDatabaseTool, s.handleLoadDatabase)
	s.mcp.AddTool(listRecentTool, s.handleListRecent)
}

// Serve starts the MCP server on stdio.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
