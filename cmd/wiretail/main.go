// Package main provides wiretail, a command-line tail for agent output
// streams. It connects to an agent SSE endpoint (or reads a captured stream
// from a file or stdin), decodes the frames, and prints the events as they
// arrive - with tool results normalized and the final response segmented
// into prose, reasoning, and tool invocations.
//
// Configuration is via environment variables:
//
//	AGENTWIRE_URL        - Stream source: http(s) URL, file path, or - for stdin (default: -)
//	AGENTWIRE_AUTH_TOKEN - Bearer token sent when the source is a URL
//	AGENTWIRE_FORMAT     - Output format: text or agui (default: text)
//	AGENTWIRE_LOG_LEVEL  - Log level: debug, info, warn, error (default: warn)
//	AGENTWIRE_TIMEOUT    - Overall read timeout (default: none)
//	AGENTWIRE_RETRIES    - Max connection attempts for URL sources (default: 5)
//
// A positional argument overrides AGENTWIRE_URL:
//
//	wiretail https://agent.example.com/api/agent/run/abc123/stream
//	wiretail captured-run.sse
//	cat captured-run.sse | wiretail
package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/agentwire/agentwire/internal/retry"
	"github.com/agentwire/agentwire/stream"
)

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	r, err := openSource(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", cfg.Source, err)
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}

	var printer interface {
		Handler() stream.Handler
		Close()
	}
	switch cfg.Format {
	case "agui":
		printer = newAGUIPrinter(os.Stdout)
	default:
		printer = newTextPrinter(os.Stdout)
	}
	defer printer.Close()

	if err := stream.Run(ctx, r, printer.Handler()); err != nil {
		slog.Error("stream ended with error", "error", err)
		os.Exit(1)
	}
}

// openSource resolves the configured source to a reader. HTTP responses and
// files are closed by the stream reader on cancellation or EOF.
func openSource(ctx context.Context, cfg *Config) (io.Reader, error) {
	switch {
	case cfg.Source == "-":
		return os.Stdin, nil
	case isURL(cfg.Source):
		return openURL(ctx, cfg)
	default:
		return os.Open(cfg.Source)
	}
}

// openURL connects to the stream endpoint, retrying transient failures
// (connection errors, 429, 5xx) with exponential backoff.
func openURL(ctx context.Context, cfg *Config) (io.Reader, error) {
	retryCfg := retry.DefaultConfig()
	if cfg.RetryAttempts > 0 {
		retryCfg.MaxAttempts = cfg.RetryAttempts
	}

	return retry.Do(ctx, retryCfg, func() (io.Reader, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Source, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/event-stream")
		if cfg.AuthToken != "" {
			req.Header.Set("Authorization", "Bearer "+cfg.AuthToken)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, &retry.StatusError{Code: resp.StatusCode, Status: resp.Status}
		}
		return resp.Body, nil
	})
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
