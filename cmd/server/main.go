package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/board-api/config"
	"github.com/d60-Lab/board-api/internal/api"
	"github.com/d60-Lab/board-api/internal/api/handler"
	"github.com/d60-Lab/board-api/internal/repository"
	"github.com/d60-Lab/board-api/internal/service"
	"github.com/d60-Lab/board-api/pkg/logger"
	"github.com/d60-Lab/board-api/pkg/sentryx"
	"github.com/d60-Lab/board-api/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := sentryx.Init(sentryx.Options{DSN: cfg.Sentry.DSN, Environment: cfg.Sentry.Environment, Release: cfg.App.Version}); err != nil {
		logger.Warn("sentry disabled", zap.Error(err))
	}
	defer sentryx.Flush(2 * time.Second)

	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, cfg)
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	h := handler.NewHandler(service.NewUserService(store), service.NewPostService(store), cfg.App.Version)
	r := api.SetupRouter(cfg, h)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.Store.Driver),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown", zap.Error(err))
	}
}
