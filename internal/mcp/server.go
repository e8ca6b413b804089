package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/notes"
)

// Server wraps the MCP server with notes tool handling.
type Server struct {
	mcpServer   *mcp.Server
	handler     *Handler
	httpHandler http.Handler
}

// NewServer creates a new MCP server over the note collection.
func NewServer(collection *notes.Collection) *Server {
	handler := NewHandler(collection)

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "personal-notes",
			Version: "1.0.0",
		},
		nil,
	)

	for _, tool := range ToolDefinitions() {
		mcp.AddTool(mcpServer, tool, handler.createToolHandler(tool.Name))
	}

	// Streamable HTTP transport: one endpoint handling both POST and GET.
	// Stateless with JSON responses keeps simple clients working without
	// an SSE stream or an initialize handshake.
	httpHandler := mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			JSONResponse: true,
			Stateless:    true,
		},
	)

	return &Server{
		mcpServer:   mcpServer,
		handler:     handler,
		httpHandler: httpHandler,
	}
}

// ServeHTTP implements http.Handler for the streamable HTTP transport.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpHandler.ServeHTTP(w, r)
}
