// Package knowledge maps connector results onto the fixed wire shapes the
// MCP tools return. The contract is fail-soft: neither operation ever
// surfaces an error to its caller — a broken search degrades to zero
// results, a broken fetch to an error-carrying result.
package knowledge

import (
	"context"
	"errors"
	"log/slog"

	"github.com/brickdatalab/mcp/internal/infra/supabase"
)

// Connector is the minimal contract the service needs from the Supabase
// adapter. supabase.Client satisfies this interface.
type Connector interface {
	SearchDocuments(ctx context.Context, query string) ([]string, error)
	FetchDocument(ctx context.Context, id string) (supabase.Document, error)
}

// SearchResult is the wire shape of a search call. IDs is never nil.
type SearchResult struct {
	IDs []string `json:"ids"`
}

// FetchResult is the wire shape of a fetch call. On failure Error is
// non-empty and Title/Content are empty strings (present, not omitted).
type FetchResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// Error values surfaced to callers inside FetchResult.
const (
	errNotFound      = "Document not found"
	errRequestPrefix = "Request failed: "
	errFetchPrefix   = "Fetch error: "
)

// Service implements the search and fetch operations over a Connector.
type Service struct {
	connector Connector
	logger    *slog.Logger
}

// NewService creates a Service backed by the given connector.
func NewService(connector Connector, logger *slog.Logger) *Service {
	return &Service{connector: connector, logger: logger}
}

// Search returns the ids of documents whose search columns contain query.
// Connector failures are logged and collapse to an empty id list.
func (s *Service) Search(ctx context.Context, query string) SearchResult {
	ids, err := s.connector.SearchDocuments(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "search request failed", "error", err)
		return SearchResult{IDs: []string{}}
	}
	if ids == nil {
		ids = []string{}
	}
	return SearchResult{IDs: ids}
}

// Fetch retrieves one document by id. Every failure path echoes the
// caller-supplied id and reports the reason in Error; on success the id is
// the value found in the row.
func (s *Service) Fetch(ctx context.Context, id string) FetchResult {
	doc, err := s.connector.FetchDocument(ctx, id)
	switch {
	case err == nil:
		return FetchResult{ID: doc.ID, Title: doc.Title, Content: doc.Content}
	case errors.Is(err, supabase.ErrNotFound):
		return FetchResult{ID: id, Error: errNotFound}
	case errors.Is(err, supabase.ErrDecode):
		s.logger.ErrorContext(ctx, "fetch error", "id", id, "error", err)
		return FetchResult{ID: id, Error: errFetchPrefix + err.Error()}
	default:
		s.logger.ErrorContext(ctx, "fetch request failed", "id", id, "error", err)
		return FetchResult{ID: id, Error: errRequestPrefix + err.Error()}
	}
}
