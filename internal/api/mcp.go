// Package api exposes the knowledge service over the Model Context Protocol
// using the official MCP Go SDK, plus the HTTP routing that hosts it.
package api

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/brickdatalab/mcp/internal/domain/knowledge"
	"github.com/brickdatalab/mcp/internal/version"
)

const serverName = "supabase-knowledge-base"

// searchArgs are the arguments of the search tool.
type searchArgs struct {
	Query string `json:"query" jsonschema:"search term to find relevant documents"`
}

// fetchArgs are the arguments of the fetch tool.
type fetchArgs struct {
	ID string `json:"id" jsonschema:"document ID to retrieve"`
}

// toolHandlers binds the MCP tool callbacks to the knowledge service.
type toolHandlers struct {
	service *knowledge.Service
	logger  *slog.Logger
}

// NewMCPServer creates an MCP server with the search and fetch tools
// registered. The tool handlers never return an error: the service contract
// is fail-soft, so every call yields a structurally valid result.
func NewMCPServer(service *knowledge.Service, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: version.Version,
	}, nil)

	h := &toolHandlers{service: service, logger: logger}
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "Search for documents in the knowledge base. Returns matching document IDs.",
	}, h.search)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "fetch",
		Description: "Fetch a specific document by its ID. Returns id, title, content, and an error field on failure.",
	}, h.fetch)

	return server
}

func (h *toolHandlers) search(ctx context.Context, _ *mcp.CallToolRequest, args searchArgs) (*mcp.CallToolResult, knowledge.SearchResult, error) {
	h.logger.InfoContext(ctx, "searching", "query", args.Query)
	result := h.service.Search(ctx, args.Query)
	h.logger.InfoContext(ctx, "search complete", "count", len(result.IDs))
	return nil, result, nil
}

func (h *toolHandlers) fetch(ctx context.Context, _ *mcp.CallToolRequest, args fetchArgs) (*mcp.CallToolResult, knowledge.FetchResult, error) {
	h.logger.InfoContext(ctx, "fetching document", "id", args.ID)
	return nil, h.service.Fetch(ctx, args.ID), nil
}
