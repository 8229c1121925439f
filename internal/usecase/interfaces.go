package usecase

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cavok/wxbrief/internal/domain"
)

// UpstreamClient is the contract for executing a resolved upstream call.
// Exactly one implementation talks HTTP; tests inject a counting fake.
type UpstreamClient interface {
	Do(ctx context.Context, tool string, ep domain.UpstreamEndpoint) (*domain.UpstreamResponse, error)
}

// MCPServerAdapter is the slice of the mcp-go server the registration path
// needs. Keeps the use case free of a hard dependency on the concrete server
// type and lets tests capture registered handlers.
type MCPServerAdapter interface {
	AddTool(tool mcp.Tool, handler server.ToolHandlerFunc)
}
