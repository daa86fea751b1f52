package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"daftar/internal/amqp"
	"daftar/internal/config"
	"daftar/internal/core"
	"daftar/internal/export"
	"daftar/internal/export/google"
	"daftar/internal/services"
	"daftar/internal/storage"
	"daftar/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting daftar-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	var statements export.StatementWriter
	if cfg.ExportSpreadsheetID != "" {
		statements, err = google.New(context.Background(), cfg.ExportSpreadsheetID, cfg.ExportSheetName)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets export", "error", err)
			os.Exit(1)
		}
		logger.Info("Periodic statement export enabled",
			"spreadsheet_id", cfg.ExportSpreadsheetID,
			"interval", cfg.ExportInterval)
	} else {
		logger.Info("Periodic statement export disabled - no EXPORT_SPREADSHEET_ID provided")
	}

	submissionWorker := worker.NewSubmissionWorker(repo, worker.StubSubmitter{}, cfg.SubmitBatchSize)
	reports := services.NewReportService(repo)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Recover transactions that missed the queue while the worker was down.
	if err := submissionWorker.StartupCheck(ctx); err != nil {
		logger.Error("Startup submission check failed", "error", err)
		// Continue; the periodic pending check retries.
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := amqpClient.ConsumeSubmissions(ctx, submissionWorker.HandleSubmissionMessage)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.SubmitInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := submissionWorker.ProcessPendingSubmissions(ctx); err != nil {
					logger.Error("Periodic submission check failed", "error", err)
				}
			}
		}
	})

	if statements != nil {
		runner := worker.NewExportRunner(cfg.ExportInterval, func(ctx context.Context) error {
			_, err := reports.ExportStatement(ctx, statements, time.Now().UTC(), core.Monthly)
			return err
		})
		g.Go(func() error { return runner.Run(ctx) })
	}

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
