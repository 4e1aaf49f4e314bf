package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun_Version_PrintsVersion(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"--version"}, &out)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "supabase-mcp version") {
		t.Fatalf("expected version output, got %q", out.String())
	}
}

func TestRun_Help_PrintsUsage(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"--help"}, &out)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("expected help output, got %q", out.String())
	}
	if !strings.Contains(out.String(), "SUPABASE_URL") {
		t.Fatalf("help should document required env vars, got %q", out.String())
	}
}

func TestRun_InvalidFlag_Returns2(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"--unknown-flag"}, &out)

	if code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestRun_MissingConfig_Returns1(t *testing.T) {
	// No t.Parallel(): mutates process-global env.
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	var out bytes.Buffer
	code := run([]string{}, &out)

	if code != 1 {
		t.Fatalf("expected exit code 1 without required config, got %d", code)
	}
}

func TestRun_MissingConfigFile_Returns1(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://xyz.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")

	var out bytes.Buffer
	code := run([]string{"--config", "/does/not/exist.yaml"}, &out)

	if code != 1 {
		t.Fatalf("expected exit code 1 for missing config file, got %d", code)
	}
}
