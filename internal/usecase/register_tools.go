package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cavok/wxbrief/internal/catalog"
	"github.com/cavok/wxbrief/internal/domain"
)

// RegisterTools registers the whole catalog on the MCP server, wiring each
// tool to a handler that runs the invocation pipeline and marshals the
// ToolResult envelope. Failures are returned as in-band error results, never
// as protocol errors, so the caller always sees the typed envelope.
func RegisterTools(srv MCPServerAdapter, uc *InvokeToolUseCase) {
	for _, def := range catalog.Definitions() {
		srv.AddTool(def, toolHandler(uc, def.Name))
	}
}

func toolHandler(uc *InvokeToolUseCase, tool string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := uc.Execute(ctx, domain.ToolRequest{
			Tool: tool,
			Args: request.GetArguments(),
		})
		if err != nil {
			result = domain.FailureResult(tool, err)
		}

		body, merr := json.Marshal(result)
		if merr != nil {
			return errorResult(fmt.Sprintf("%s: failed to encode result: %v", tool, merr)), nil
		}
		if !result.OK {
			return errorResult(string(body)), nil
		}
		return textResult(string(body)), nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(message)},
		IsError: true,
	}
}
