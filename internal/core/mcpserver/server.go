// Package mcpserver exposes the tool catalogue of one business over MCP.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/tools"
)

// Catalogue is the subset of the tool registry served over MCP.
type Catalogue interface {
	Tools() []*tools.Tool
	Dispatch(ctx context.Context, customerID uint, name, arguments string) tools.Result
}

// New builds an MCP server whose tools all run for customerID.
func New(name, version string, catalogue Catalogue, customerID uint, logger zerolog.Logger) (*server.MCPServer, error) {
	s := server.NewMCPServer(name, version, server.WithToolCapabilities(false), server.WithRecovery())
	if err := Register(s, catalogue, customerID, logger); err != nil {
		return nil, err
	}
	return s, nil
}

// Register adds every catalogue tool to s.
func Register(s *server.MCPServer, catalogue Catalogue, customerID uint, logger zerolog.Logger) error {
	logger = logger.With().Str("component", "mcp").Uint("customer_id", customerID).Logger()

	for _, t := range catalogue.Tools() {
		schema, err := json.Marshal(t.Parameters)
		if err != nil {
			return fmt.Errorf("%s: failed to encode schema: %w", t.Name, err)
		}

		tool := mcp.NewToolWithRawSchema(t.Name, t.Description, schema)
		tool.Annotations.ReadOnlyHint = mcp.ToBoolPtr(!t.Mutates)
		tool.Annotations.DestructiveHint = mcp.ToBoolPtr(false)

		s.AddTool(tool, handler(catalogue, t.Name, customerID, logger))
	}
	return nil
}

func handler(catalogue Catalogue, name string, customerID uint, logger zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: invalid arguments for %s: %v", name, err)), nil
		}

		res := catalogue.Dispatch(ctx, customerID, name, string(args))
		if res.Err != nil {
			logger.Warn().Err(res.Err).Str("tool", name).Msg("mcp tool call failed")
			return mcp.NewToolResultError(res.Text), nil
		}
		return mcp.NewToolResultText(res.Text), nil
	}
}
