// Package toolserver runs a ToolBox as a standalone MCP server process.
//
// Main owns the process lifecycle shared by every server binary: flag and
// configuration loading, logging, tracing, building the tools, and serving
// them over stdio or streamable HTTP until the client disconnects or the
// context is cancelled.
package toolserver

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/germanamz/toolservers/pkg/config"
	"github.com/germanamz/toolservers/pkg/telemetry"
	"github.com/germanamz/toolservers/pkg/tools/mcpserver"
	"github.com/germanamz/toolservers/pkg/tools/toolbox"
)

// Exit codes returned by Main.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

const shutdownTimeout = 5 * time.Second

// App describes one tool server binary.
type App struct {
	Name         string
	Version      string
	Instructions string

	// Build creates the server's tools. It runs after configuration is
	// loaded and before any transport is opened, so a returned error stops
	// the process without serving. opts carry the server middleware and
	// must be passed to toolbox.New.
	Build func(cfg *config.Config, opts ...toolbox.Option) (*toolbox.ToolBox, error)
}

// Main runs app with the given command-line arguments and standard streams
// and returns the process exit code.
func Main(ctx context.Context, app App, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(app.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg, err := config.ParseFlags(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", app.Name, err)
		return ExitUsage
	}

	level, _ := config.ParseLevel(cfg.LogLevel) // validated by ParseFlags
	log := NewLogger(stderr, level).With("server", app.Name)

	if err := run(ctx, app, &cfg, log, stdin, stdout); err != nil {
		log.Error("server failed", "error", err)
		return ExitError
	}

	return ExitOK
}

func run(ctx context.Context, app App, cfg *config.Config, log *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	tb, err := app.Build(cfg, toolbox.WithMiddleware(
		toolbox.Logger(log),
		toolbox.Tracing(telemetry.Tracer(app.Name)),
		toolbox.Timeout(cfg.CallTimeout),
	))
	if err != nil {
		return err
	}

	shutdown, err := telemetry.Setup(ctx, app.Name, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := shutdown(sctx); err != nil {
			log.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	srv := mcpserver.New(app.Name, app.Version, mcpserver.WithInstructions(app.Instructions))
	srv.Register(tb)

	log.Info("serving", "transport", cfg.Transport, "tools", len(tb.Tools()))

	switch cfg.Transport {
	case config.TransportHTTP:
		return serveHTTP(ctx, srv, cfg.HTTPAddr, log)
	default:
		return serveStdio(ctx, srv, stdin, stdout)
	}
}

func serveStdio(ctx context.Context, srv *mcpserver.MCPServer, stdin io.Reader, stdout io.Writer) error {
	err := srv.Serve(ctx, stdin, stdout)
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}

	return fmt.Errorf("serve stdio: %w", err)
}

func serveHTTP(ctx context.Context, srv *mcpserver.MCPServer, addr string, log *slog.Logger) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	log.Info("http listening", "addr", addr)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// NewLogger returns a text logger writing to w at the given level. Servers
// log to stderr only; stdout belongs to the stdio transport.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
