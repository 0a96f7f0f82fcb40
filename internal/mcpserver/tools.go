package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// detectDatabaseTool defines the detect_database MCP tool.
var detectDatabaseTool = mcp.NewTool("detect_database",
	mcp.WithDescription("Classify a filesystem path as a FAISS or Chroma vector database and resolve the concrete file or directory to load."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Filesystem path to a vector database file or directory"),
	),
)

// loadDatabaseTool defines the load_database MCP tool.
var loadDatabaseTool = mcp.NewTool("load_database",
	mcp.WithDescription("Load a vector database and return its records (id, text, source, metadata). Vectors are summarized to keep responses small."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Filesystem path to a vector database file or directory"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of records to return (default 25)"),
	),
	mcp.WithBoolean("include_vectors",
		mcp.Description("Include full embedding vectors in the response (default false)"),
	),
)

// listRecentTool defines the list_recent MCP tool.
var listRecentTool = mcp.NewTool("list_recent",
	mcp.WithDescription("List recently inspected vector databases with their type, record count, and status."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of entries to return (default 10)"),
	),
)
