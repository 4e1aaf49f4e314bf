// Package supabase is the HTTP adapter for a Supabase PostgREST endpoint.
// It exposes two read operations against a single configured table:
//   - GET /{table}?select={id}&or=(...)      — substring search across columns
//   - GET /{table}?select=...&{id}=eq.{val}  — fetch one row by id
//
// The client performs exactly one attempt per call; retries, caching and
// ranking are explicitly out of scope.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cast"

	"github.com/brickdatalab/mcp/internal/infra/config"
)

const (
	mimeJSON          = "application/json"
	headerContentType = "Content-Type"
	headerAPIKey      = "apikey"
	headerAuth        = "Authorization"
)

// Error categories. Callers discriminate with errors.Is; the concrete
// message carries the detail.
var (
	// ErrNotFound is returned by FetchDocument when the id matches no row.
	ErrNotFound = errors.New("document not found")
	// ErrRequest covers transport failures, timeouts and non-2xx statuses.
	ErrRequest = errors.New("request failed")
	// ErrDecode covers malformed or unexpectedly shaped response bodies.
	ErrDecode = errors.New("unexpected response")
)

// Document is a single row from the configured table, column values coerced
// to strings.
type Document struct {
	ID      string
	Title   string
	Content string
}

// Client issues read queries against the PostgREST API.
// Safe for concurrent use: all fields are set at construction and never
// mutated.
type Client struct {
	baseURL       string // "<SUPABASE_URL>/rest/v1"
	anonKey       string
	table         string
	searchColumns []string
	idColumn      string
	titleColumn   string
	contentColumn string
	httpClient    *http.Client
	logger        *slog.Logger
}

// NewClient creates a Client from the immutable application configuration.
func NewClient(cfg config.Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL:       cfg.SupabaseURL + "/rest/v1",
		anonKey:       cfg.SupabaseAnonKey,
		table:         cfg.Table,
		searchColumns: cfg.SearchColumns,
		idColumn:      cfg.IDColumn,
		titleColumn:   cfg.TitleColumn,
		contentColumn: cfg.ContentColumn,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

// SearchDocuments runs a case-insensitive substring search for query across
// the configured search columns and returns matching row ids in the order
// PostgREST returned them. The query is treated as untrusted text: it is
// value-escaped so filter metacharacters match literally.
func (c *Client) SearchDocuments(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("select", c.idColumn)
	params.Set("or", orFilter(c.searchColumns, query))

	rows, err := c.getRows(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, cast.ToString(row[c.idColumn]))
	}
	return ids, nil
}

// FetchDocument retrieves a single row by id. When the id matches multiple
// rows, the first one wins. Returns ErrNotFound for an empty row set.
func (c *Client) FetchDocument(ctx context.Context, id string) (Document, error) {
	params := url.Values{}
	params.Set("select", strings.Join([]string{c.idColumn, c.titleColumn, c.contentColumn}, ","))
	params.Set(c.idColumn, "eq."+id)

	rows, err := c.getRows(ctx, params)
	if err != nil {
		return Document{}, fmt.Errorf("fetch document: %w", err)
	}
	if len(rows) == 0 {
		return Document{}, ErrNotFound
	}

	row := rows[0]
	return Document{
		ID:      cast.ToString(row[c.idColumn]),
		Title:   cast.ToString(row[c.titleColumn]),
		Content: cast.ToString(row[c.contentColumn]),
	}, nil
}

// getRows issues a single GET against the configured table and decodes the
// JSON array body. Column values are decoded with json.Number so numeric ids
// round-trip without float formatting.
func (c *Client) getRows(ctx context.Context, params url.Values) ([]map[string]any, error) {
	reqURL := c.baseURL + "/" + c.table + "?" + params.Encode()
	c.logger.DebugContext(ctx, "supabase request", "url", reqURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrRequest, err)
	}
	req.Header.Set(headerAPIKey, c.anonKey)
	req.Header.Set(headerAuth, "Bearer "+c.anonKey)
	req.Header.Set(headerContentType, mimeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrRequest, resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var rows []map[string]any
	if decodeErr := dec.Decode(&rows); decodeErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, decodeErr)
	}
	return rows, nil
}
