// cmd/kiekkyd/main.go
// Headless client runtime: restores the persisted session, keeps the
// realtime bridge in step with it and serves diagnostics.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imadgeboyega/kiekky-client/internal/client"
	"github.com/imadgeboyega/kiekky-client/internal/config"
	"github.com/imadgeboyega/kiekky-client/internal/localdata"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	statePath := cfg.StatePath
	if statePath == "" {
		var err error
		statePath, err = localdata.DefaultPath()
		if err != nil {
			logger.Error("resolving state path failed", "error", err)
			os.Exit(1)
		}
	}

	local, err := localdata.Open(statePath)
	if err != nil {
		logger.Error("opening local state failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := client.New(cfg, local, logger)

	if err := app.RestoreSession(ctx); err != nil {
		logger.Info("no usable session, starting signed out")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		dump, err := app.DumpState()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(dump)
	})

	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
	go func() {
		logger.Info("diagnostics listening", "addr", cfg.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("diagnostics server failed", "error", err)
		}
	}()

	logger.Info("client runtime started", "environment", cfg.Environment)
	app.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()
	metricsServer.Shutdown(shutdownCtx)
	logger.Info("client runtime stopped")
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
