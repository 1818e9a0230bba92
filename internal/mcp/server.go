// ABOUTME: MCP server setup for the treino workout store.
// ABOUTME: Wraps MCP server with repository, planner, and measurement access.
package mcp

import (
	"context"
	"time"

	"github.com/harperreed/treino/internal/measure"
	"github.com/harperreed/treino/internal/planner"
	"github.com/harperreed/treino/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	sheets    *planner.Manager
	measures  *measure.Service
	origin    string
	now       func() time.Time
}

// NewServer creates a new MCP server with the given storage.
// origin prefixes share links returned by the sheet tools.
func NewServer(repo storage.Repository, origin string) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "treino",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		sheets:    planner.NewManager(repo),
		measures:  measure.NewService(repo),
		origin:    origin,
		now:       time.Now,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
