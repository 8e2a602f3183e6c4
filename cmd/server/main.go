package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/salaryboard/internal/config"
	"github.com/JonMunkholm/salaryboard/internal/core"
	"github.com/JonMunkholm/salaryboard/internal/logging"
	"github.com/JonMunkholm/salaryboard/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"source", cfg.Payroll.SourcePath,
		"totals_mode", cfg.Payroll.TotalsMode,
		"upload_max_file_size", cfg.Upload.MaxFileSize,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	service := core.NewService(core.Options{
		TotalsMode:           cfg.Payroll.Mode(),
		MaxContinuationLines: cfg.Payroll.MaxContinuationLines,
		MaxFileSize:          cfg.Upload.MaxFileSize,
		MaxWait:              cfg.Upload.MaxWaitTime,
		HistorySize:          cfg.Payroll.HistorySize,
		Logger:               logger,
	})

	// Initial load; without a source file the dashboard waits for an upload
	ctx := context.Background()
	if _, err := service.IngestFile(ctx, cfg.Payroll.SourcePath); err != nil {
		if errors.Is(err, core.ErrSourceNotFound) {
			slog.Warn("payroll source not found, waiting for upload", "path", cfg.Payroll.SourcePath)
		} else {
			slog.Error("initial payroll load failed",
				"path", cfg.Payroll.SourcePath,
				"error", err,
				"user_message", core.FormatUserError(err),
			)
		}
	}

	server := web.NewServer(service, core.NewMemoryPreferences(), cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go service.StartReloadScheduler(jobCtx, cfg.Payroll.SourcePath, cfg.Payroll.ReloadInterval)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for an in-flight ingestion to finish (with timeout)
		if status := service.IngestStatus(); status.Active > 0 {
			slog.Info("waiting for ingestion to complete", "sources", status.Sources)
			if err := service.WaitForIngest(shutdownCtx); err != nil {
				slog.Warn("ingestion did not complete in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
