package mcp

import (
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yanqian/dialogsum/internal/domain/summarizer"
)

const (
	serverName    = "dialogsum"
	serverVersion = "0.1.0"
)

// Server exposes the summarizer as MCP tools.
type Server struct {
	server *mcp.Server
	svc    summarizer.Service
	logger *slog.Logger
}

// NewServer creates the MCP server with every tool registered.
func NewServer(svc summarizer.Service, logger *slog.Logger) *Server {
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    serverName,
			Version: serverVersion,
		}, nil),
		svc:    svc,
		logger: logger.With("component", "mcp.server"),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarize_dialogue",
		Description: "Summarize a dialogue such as a transcript with #Person1#/#Person2# turns",
	}, s.handleSummarize)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sample_dialogues",
		Description: "List the built-in sample dialogues",
	}, s.handleListSamples)
}

// Handler serves the MCP streamable HTTP transport.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}
