package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stroppy-io/docs-mcp/internal/docstore"
)

const (
	serverName        = "DocumentMCP"
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// newMCPServer builds the MCP server with every document handler registered.
func newMCPServer(store *docstore.Store, logger *zap.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithInstructions(instructions),
		server.WithHooks(newHooks(logger)),
		server.WithToolHandlerMiddleware(toolCallLogging(logger)),
		server.WithRecovery(),
	)
	newRegistry(store).register(s)
	return s
}

// serve runs s on the configured transport until ctx is done or the
// transport fails.
func serve(ctx context.Context, cfg *Config, s *server.MCPServer, logger *zap.Logger, stdin io.Reader, stdout io.Writer) error {
	logger.Info("starting server",
		zap.String("transport", cfg.Transport),
		zap.String("version", version),
	)

	switch cfg.Transport {
	case transportStdio:
		return serveStdio(ctx, s, logger, stdin, stdout)
	case transportSSE:
		sse := newSSEServer(cfg, s)
		return serveHTTP(ctx, logger, cfg.Addr, sse.Start, sse.Shutdown)
	case transportHTTP:
		h := newStreamableHTTPServer(cfg, s)
		return serveHTTP(ctx, logger, cfg.Addr, h.Start, h.Shutdown)
	default:
		return fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

// newSSEServer wraps s in an SSE transport that owns its http.Server up
// front, so Shutdown works even when it runs before Start.
func newSSEServer(cfg *Config, s *server.MCPServer) *server.SSEServer {
	srv := &http.Server{Addr: cfg.Addr, ReadHeaderTimeout: readHeaderTimeout}
	sse := server.NewSSEServer(s,
		server.WithBaseURL(cfg.BaseURL),
		server.WithHTTPServer(srv),
	)
	srv.Handler = sse
	return sse
}

// newStreamableHTTPServer wraps s in a streamable HTTP transport mounted on
// cfg.Endpoint, with the same up-front http.Server as newSSEServer.
func newStreamableHTTPServer(cfg *Config, s *server.MCPServer) *server.StreamableHTTPServer {
	srv := &http.Server{Addr: cfg.Addr, ReadHeaderTimeout: readHeaderTimeout}
	h := server.NewStreamableHTTPServer(s,
		server.WithEndpointPath(cfg.Endpoint),
		server.WithStreamableHTTPServer(srv),
	)
	mux := http.NewServeMux()
	mux.Handle(cfg.Endpoint, h)
	srv.Handler = mux
	return h
}

func serveStdio(ctx context.Context, s *server.MCPServer, logger *zap.Logger, stdin io.Reader, stdout io.Writer) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(zap.NewStdLog(logger))

	err := stdio.Listen(ctx, stdin, stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

// serveHTTP runs an HTTP based transport and shuts it down once ctx is done.
func serveHTTP(
	ctx context.Context,
	logger *zap.Logger,
	addr string,
	start func(addr string) error,
	shutdown func(ctx context.Context) error,
) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", zap.String("addr", addr))
		if err := start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
