// Package config provides application-wide configuration loaded from env vars.
// Required settings have no defaults: Load fails when they are absent so the
// process refuses to start with a half-usable connector.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the Supabase MCP server.
// Immutable after Load; shared freely between concurrent tool calls.
type Config struct {
	// Supabase PostgREST endpoint and credential.
	SupabaseURL     string // SUPABASE_URL — required, e.g. "https://xyz.supabase.co"
	SupabaseAnonKey string // SUPABASE_ANON_KEY — required

	// Target table and column mapping.
	Table         string   // SUPABASE_TABLE — default: "documents"
	SearchColumns []string // SEARCH_COLUMNS — default: title,content
	IDColumn      string   // ID_COLUMN — default: "id"
	TitleColumn   string   // TITLE_COLUMN — default: "title"
	ContentColumn string   // CONTENT_COLUMN — default: "content"

	// Per-request deadline for outbound PostgREST calls.
	RequestTimeout time.Duration // REQUEST_TIMEOUT (seconds) — default: 30

	// MCP HTTP listener.
	Host string // MCP_HOST — default: "0.0.0.0"
	Port int    // MCP_PORT — default: 8000

	// Optional localtunnel sidecar.
	UseLocaltunnel       bool   // USE_LOCALTUNNEL — default: false
	LocaltunnelSubdomain string // LOCALTUNNEL_SUBDOMAIN — default: ""

	// Logging.
	LogLevel string // LOG_LEVEL — default: "info"
}

const (
	envKeySupabaseURL          = "SUPABASE_URL"
	envKeySupabaseAnonKey      = "SUPABASE_ANON_KEY"
	envKeyTable                = "SUPABASE_TABLE"
	envKeySearchColumns        = "SEARCH_COLUMNS"
	envKeyIDColumn             = "ID_COLUMN"
	envKeyTitleColumn          = "TITLE_COLUMN"
	envKeyContentColumn        = "CONTENT_COLUMN"
	envKeyRequestTimeout       = "REQUEST_TIMEOUT"
	envKeyHost                 = "MCP_HOST"
	envKeyPort                 = "MCP_PORT"
	envKeyUseLocaltunnel       = "USE_LOCALTUNNEL"
	envKeyLocaltunnelSubdomain = "LOCALTUNNEL_SUBDOMAIN"
	envKeyLogLevel             = "LOG_LEVEL"
)

const (
	defaultTable          = "documents"
	defaultSearchColumns  = "title,content"
	defaultIDColumn       = "id"
	defaultTitleColumn    = "title"
	defaultContentColumn  = "content"
	defaultRequestTimeout = 30 * time.Second
	defaultHost           = "0.0.0.0"
	defaultPort           = 8000
	defaultLogLevel       = "info"
)

// fileValues mirrors Config as optional YAML keys. Env vars take precedence
// over file values, file values over defaults.
type fileValues struct {
	SupabaseURL          string `yaml:"supabase_url"`
	SupabaseAnonKey      string `yaml:"supabase_anon_key"`
	Table                string `yaml:"table"`
	SearchColumns        string `yaml:"search_columns"`
	IDColumn             string `yaml:"id_column"`
	TitleColumn          string `yaml:"title_column"`
	ContentColumn        string `yaml:"content_column"`
	RequestTimeout       int    `yaml:"request_timeout"`
	Host                 string `yaml:"host"`
	Port                 int    `yaml:"port"`
	UseLocaltunnel       bool   `yaml:"use_localtunnel"`
	LocaltunnelSubdomain string `yaml:"localtunnel_subdomain"`
	LogLevel             string `yaml:"log_level"`
}

// Load reads configuration from environment variables, applying defaults for
// missing optional values. A .env file in the working directory is loaded
// first when present (existing env vars win, per godotenv semantics).
func Load() (Config, error) {
	_ = godotenv.Load()
	return build(fileValues{})
}

// LoadFile reads configuration from a YAML file merged with environment
// variables; env vars override file values.
func LoadFile(path string) (Config, error) {
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	var fv fileValues
	if unmarshalErr := yaml.Unmarshal(raw, &fv); unmarshalErr != nil {
		return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
	}
	return build(fv)
}

// build resolves every setting as env > file > default and validates the
// required ones.
func build(fv fileValues) (Config, error) {
	supabaseURL := resolve(envKeySupabaseURL, fv.SupabaseURL, "")
	anonKey := resolve(envKeySupabaseAnonKey, fv.SupabaseAnonKey, "")
	if supabaseURL == "" || anonKey == "" {
		return Config{}, fmt.Errorf("%s and %s are required", envKeySupabaseURL, envKeySupabaseAnonKey)
	}

	timeout := defaultRequestTimeout
	if fv.RequestTimeout > 0 {
		timeout = time.Duration(fv.RequestTimeout) * time.Second
	}
	if v := os.Getenv(envKeyRequestTimeout); v != "" {
		timeout = timeoutSeconds(v, timeout)
	}

	port := defaultPort
	if fv.Port > 0 {
		port = fv.Port
	}
	if v := os.Getenv(envKeyPort); v != "" {
		port = intOr(v, port)
	}

	useTunnel := fv.UseLocaltunnel
	if v := os.Getenv(envKeyUseLocaltunnel); v != "" {
		useTunnel = boolValue(v)
	}

	cfg := Config{
		SupabaseURL:          strings.TrimRight(supabaseURL, "/"),
		SupabaseAnonKey:      anonKey,
		Table:                resolve(envKeyTable, fv.Table, defaultTable),
		SearchColumns:        splitColumns(resolve(envKeySearchColumns, fv.SearchColumns, defaultSearchColumns)),
		IDColumn:             resolve(envKeyIDColumn, fv.IDColumn, defaultIDColumn),
		TitleColumn:          resolve(envKeyTitleColumn, fv.TitleColumn, defaultTitleColumn),
		ContentColumn:        resolve(envKeyContentColumn, fv.ContentColumn, defaultContentColumn),
		RequestTimeout:       timeout,
		Host:                 resolve(envKeyHost, fv.Host, defaultHost),
		Port:                 port,
		UseLocaltunnel:       useTunnel,
		LocaltunnelSubdomain: resolve(envKeyLocaltunnelSubdomain, fv.LocaltunnelSubdomain, ""),
		LogLevel:             resolve(envKeyLogLevel, fv.LogLevel, defaultLogLevel),
	}
	if len(cfg.SearchColumns) == 0 {
		return Config{}, fmt.Errorf("%s must name at least one column", envKeySearchColumns)
	}
	return cfg, nil
}

// resolve returns the env value for key, or fileVal, or fallback — first
// non-empty wins.
func resolve(key, fileVal, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if fileVal != "" {
		return fileVal
	}
	return fallback
}

// splitColumns parses a comma-separated column list, trimming whitespace and
// dropping empty entries.
func splitColumns(v string) []string {
	parts := strings.Split(v, ",")
	columns := make([]string, 0, len(parts))
	for _, p := range parts {
		if col := strings.TrimSpace(p); col != "" {
			columns = append(columns, col)
		}
	}
	return columns
}

// timeoutSeconds parses a seconds count, falling back for unparseable
// values.
func timeoutSeconds(v string, fallback time.Duration) time.Duration {
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// intOr parses an integer, falling back for empty or unparseable values.
func intOr(v string, fallback int) int {
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	return fallback
}

// boolValue reports whether v spells an affirmative ("true", "1", "yes"),
// case-insensitively. Anything else is false.
func boolValue(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	}
	return false
}
