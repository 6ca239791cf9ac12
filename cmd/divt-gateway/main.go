package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trustline-ai/divt-gateway/internal/audit"
	"github.com/trustline-ai/divt-gateway/internal/auth"
	"github.com/trustline-ai/divt-gateway/internal/config"
	"github.com/trustline-ai/divt-gateway/internal/gateway"
	"github.com/trustline-ai/divt-gateway/internal/registry"
	"github.com/trustline-ai/divt-gateway/internal/server"
	"github.com/trustline-ai/divt-gateway/internal/trustapi"
)

func main() {
	logger := mustBuildLogger(os.Getenv("DIVT_GATEWAY_LOG_LEVEL"))
	defer logger.Sync() //nolint:errcheck // best-effort flush

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}

	logger.Info("starting divt gateway",
		zap.String("api_url", cfg.BaseURL),
		zap.String("transport", cfg.Transport),
		zap.Duration("api_timeout", cfg.Timeout),
	)

	client := trustapi.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout, logger)
	gw := gateway.New(client, logger)
	reg := registry.New(gw)
	if err := reg.CompileSchemas(); err != nil {
		logger.Fatal("tool schema self-check failed", zap.Error(err))
	}

	writer := audit.NewLogWriter(logger)
	defer writer.Close()

	gatewayServer := server.New(reg, writer, logger)
	mcpServer := gatewayServer.MCPServer()

	// Graceful shutdown: a signal cancels the serve context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cfg.Transport {
	case config.TransportSSE:
		serveSSE(ctx, mcpServer, cfg, logger)
	default:
		logger.Info("serving MCP over stdio", zap.Int("tools", len(reg.Definitions())))
		if err := mcpServer.Run(ctx, &mcpsdk.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal("mcp server failed", zap.Error(err))
		}
	}

	logger.Info("divt gateway stopped")
}

func serveSSE(ctx context.Context, mcpServer *mcpsdk.Server, cfg *config.Config, logger *zap.Logger) {
	var handler http.Handler = mcpsdk.NewSSEHandler(func(*http.Request) *mcpsdk.Server {
		return mcpServer
	}, nil)
	if len(cfg.ServerKeys) > 0 {
		handler = auth.Middleware(auth.NewStaticAuthenticator(cfg.ServerKeys), handler, logger)
		logger.Info("inbound bearer-key auth enabled", zap.Int("keys", len(cfg.ServerKeys)))
	}

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", zap.Error(err))
		}
	}()

	logger.Info("serving MCP over SSE", zap.String("addr", cfg.ListenAddr))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server failed", zap.Error(err))
	}
}

func mustBuildLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	return logger
}
