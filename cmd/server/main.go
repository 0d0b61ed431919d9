// Command tasktrack-server starts the task tracker HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ekomarov/tasktrack/internal/config"
	"github.com/ekomarov/tasktrack/internal/server/httpapi"
	"github.com/ekomarov/tasktrack/internal/service"
	"github.com/ekomarov/tasktrack/internal/storage"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, migrates the selected backend, and serves
// the HTTP API until interrupted.
func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
	)

	if cfg.SessionKey == "" {
		logger.Fatal("missing session signing key (SESSION_KEY)")
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open storage", zap.Error(err))
	}
	defer store.Close()

	// Services
	authSvc := service.NewAuthService(store.Users)
	todoSvc := service.NewTodoService(store.Todos)

	sessions := httpapi.NewSessionManager([]byte(cfg.SessionKey), cfg.SessionTTL, cfg.UseTLS())

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	httpapi.New(authSvc, todoSvc, sessions, logger).Routes(e)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.UseTLS()))
		if cfg.UseTLS() {
			errCh <- e.StartTLS(cfg.Addr, cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			errCh <- e.Start(cfg.Addr)
		}
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			_ = e.Close()
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
