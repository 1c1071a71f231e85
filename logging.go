package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the process logger. Logs must never go to stdout: the
// stdio transport owns it.
func newLogger(cfg *Config, w zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if cfg.LogFormat == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, w, level)
	return zap.New(core, zap.AddCaller()), nil
}

// newHooks logs protocol traffic.
func newHooks(logger *zap.Logger) *server.Hooks {
	hooks := &server.Hooks{}

	hooks.AddBeforeAny(func(_ context.Context, id any, method mcp.MCPMethod, _ any) {
		logger.Debug("request", zap.Any("id", id), zap.String("method", string(method)))
	})
	hooks.AddOnError(func(_ context.Context, id any, method mcp.MCPMethod, _ any, err error) {
		logger.Warn("request failed", zap.Any("id", id), zap.String("method", string(method)), zap.Error(err))
	})
	hooks.AddAfterInitialize(func(_ context.Context, _ any, message *mcp.InitializeRequest, result *mcp.InitializeResult) {
		logger.Info("client initialized",
			zap.String("client", message.Params.ClientInfo.Name),
			zap.String("client_version", message.Params.ClientInfo.Version),
			zap.String("protocol", result.ProtocolVersion),
		)
	})
	return hooks
}

// toolCallLogging tags every tool call with a request ID and logs its outcome.
func toolCallLogging(logger *zap.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			log := logger.With(
				zap.String("request_id", uuid.NewString()),
				zap.String("tool", request.Params.Name),
			)
			start := time.Now()

			result, err := next(ctx, request)

			elapsed := zap.Duration("duration", time.Since(start))
			switch {
			case err != nil:
				log.Error("tool call failed", elapsed, zap.Error(err))
			case result != nil && result.IsError:
				log.Warn("tool returned error", elapsed, zap.String("message", resultText(result)))
			default:
				log.Debug("tool call", elapsed)
			}
			return result, err
		}
	}
}

// resultText joins the text parts of a tool result.
func resultText(result *mcp.CallToolResult) string {
	var text string
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			text += tc.Text
		}
	}
	return text
}
