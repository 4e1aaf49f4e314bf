// Package tunnel runs an optional localtunnel sidecar that exposes the
// local MCP port publicly. The core has no functional dependency on it:
// the subprocess output is drained asynchronously into the logger and
// never consumed programmatically.
package tunnel

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
)

// Tunnel manages the localtunnel subprocess.
type Tunnel struct {
	port      int
	subdomain string
	logger    *slog.Logger
}

// New creates a Tunnel for the given local port. subdomain may be empty.
func New(port int, subdomain string, logger *slog.Logger) *Tunnel {
	return &Tunnel{port: port, subdomain: subdomain, logger: logger}
}

// command returns the argv to spawn, e.g.
// npx localtunnel --port 8000 [--subdomain my-kb].
func (t *Tunnel) command() []string {
	args := []string{"npx", "localtunnel", "--port", strconv.Itoa(t.port)}
	if t.subdomain != "" {
		args = append(args, "--subdomain", t.subdomain)
	}
	return args
}

// Start spawns the tunnel process and returns immediately. Its stdout and
// stderr are drained by background goroutines; process exit is logged, not
// propagated. Cancelling ctx kills the process.
func (t *Tunnel) Start(ctx context.Context) error {
	argv := t.command()
	t.logger.Info("starting localtunnel", "command", argv)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("localtunnel stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("localtunnel stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start localtunnel: %w", err)
	}

	go t.drain(stdout)
	go t.drain(stderr)
	go func() {
		if waitErr := cmd.Wait(); waitErr != nil {
			t.logger.Error("localtunnel exited", "error", waitErr)
			return
		}
		t.logger.Info("localtunnel exited")
	}()
	return nil
}

// drain logs each output line from the subprocess.
func (t *Tunnel) drain(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		t.logger.Info("localtunnel", "output", scanner.Text())
	}
}
