package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brickdatalab/mcp/internal/domain/knowledge"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := NewMCPServer(knowledge.NewService(&stubConnector{}, logger), logger)
	return NewRouter(server, logger)
}

func TestRouter_Healthz_Returns200(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "ok") {
		t.Errorf("unexpected body: %q", rr.Body.String())
	}
}

func TestRouter_MCPEndpoint_Routed(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rr, req)

	// The MCP handler owns the response; the router just must not 404.
	if rr.Code == http.StatusNotFound {
		t.Fatal("/mcp must be routed to the MCP handler")
	}
}

func TestRouter_UnknownPath_Returns404(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
