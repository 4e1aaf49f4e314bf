package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/brickdatalab/mcp/internal/api/middleware"
)

// NewRouter builds the HTTP routing for the MCP server: the streamable MCP
// endpoint at /mcp and a liveness probe at /healthz.
func NewRouter(server *mcp.Server, logger *slog.Logger) http.Handler {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Get("/healthz", healthz)
	r.Handle("/mcp", mcpHandler)
	return r
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
}
