// Supabase MCP server — entry point.
// Exposes search/fetch over a Supabase knowledge base via the Model Context
// Protocol, served over streamable HTTP (default) or stdio.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/brickdatalab/mcp/internal/api"
	"github.com/brickdatalab/mcp/internal/domain/knowledge"
	"github.com/brickdatalab/mcp/internal/infra/config"
	"github.com/brickdatalab/mcp/internal/infra/supabase"
	"github.com/brickdatalab/mcp/internal/infra/tunnel"
	"github.com/brickdatalab/mcp/internal/server"
	"github.com/brickdatalab/mcp/internal/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("supabase-mcp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")
	stdio := fs.Bool("stdio", false, "Serve MCP over stdio instead of HTTP")
	configPath := fs.String("config", "", "Optional YAML configuration file")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err) //nolint:errcheck
		return 1
	}

	return serve(cfg, *stdio)
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func serve(cfg config.Config, stdio bool) int {
	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := supabase.NewClient(cfg, logger)
	service := knowledge.NewService(client, logger)
	mcpServer := api.NewMCPServer(service, logger)

	// Credential deliberately absent from the startup banner.
	logger.Info("starting Supabase MCP server",
		"supabase_url", cfg.SupabaseURL,
		"table", cfg.Table,
		"search_columns", cfg.SearchColumns,
		"localtunnel", cfg.UseLocaltunnel,
	)

	if stdio {
		if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil {
			logger.Error("stdio server failed", "error", err)
			return 1
		}
		return 0
	}

	if cfg.UseLocaltunnel {
		tn := tunnel.New(cfg.Port, cfg.LocaltunnelSubdomain, logger)
		if tunnelErr := tn.Start(ctx); tunnelErr != nil {
			// The tunnel is a convenience sidecar; the server still serves locally.
			logger.Error("failed to start localtunnel", "error", tunnelErr)
		}
	}

	srvConfig := server.DefaultConfig()
	srvConfig.Host = cfg.Host
	srvConfig.Port = cfg.Port
	srv := server.NewServer(api.NewRouter(mcpServer, logger), srvConfig, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			return 1
		}
		return 0
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		return 1
	}
	return 0
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printHelp(out io.Writer) {
	helpText := `supabase-mcp - MCP server for Supabase knowledge bases

Exposes two tools over the Model Context Protocol:
  search(query)  Find document IDs matching a substring query
  fetch(id)      Retrieve a document by ID

Usage:
  supabase-mcp [options]

Options:
  --version        Show version information
  --help           Show this help message
  --stdio          Serve over stdio instead of HTTP
  --config <file>  Load settings from a YAML file (env vars take precedence)

Environment:
  SUPABASE_URL        Supabase project URL (required)
  SUPABASE_ANON_KEY   Supabase anon/API key (required)
  SUPABASE_TABLE      Target table (default: documents)
  SEARCH_COLUMNS      Comma-separated columns to search (default: title,content)
  ID_COLUMN           Identifier column (default: id)
  TITLE_COLUMN        Title column (default: title)
  CONTENT_COLUMN      Content column (default: content)
  REQUEST_TIMEOUT     Per-request deadline in seconds (default: 30)
  MCP_HOST            Listen host (default: 0.0.0.0)
  MCP_PORT            Listen port (default: 8000)
  USE_LOCALTUNNEL     Start a localtunnel sidecar (default: false)
  LOCALTUNNEL_SUBDOMAIN  Requested tunnel subdomain
  LOG_LEVEL           debug|info|warn|error (default: info)

Examples:
  SUPABASE_URL=... SUPABASE_ANON_KEY=... supabase-mcp
  supabase-mcp --stdio
  supabase-mcp --config config.yaml`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
