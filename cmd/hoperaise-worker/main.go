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

	"hoperaise/internal/amqp"
	"hoperaise/internal/config"
	gsheet "hoperaise/internal/export/google"
	applog "hoperaise/internal/log"
	"hoperaise/internal/storage"
	"hoperaise/internal/worker"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	logger.Info("Starting hoperaise-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("Export disabled - no GOOGLE_SPREADSHEET_ID provided, nothing to do")
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open local database", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	sheetsClient, err := gsheet.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exporter := worker.NewExportWorker(repo, sheetsClient, worker.Config{
		PollInterval: cfg.ExportInterval,
		BatchSize:    cfg.ExportBatchSize,
	})
	if err := exporter.Start(ctx); err != nil {
		logger.Error("Failed to start export worker", "error", err)
		os.Exit(1)
	}

	// Drain anything left over from previous runs right away.
	if err := exporter.ExportPending(ctx); err != nil {
		logger.Error("Startup export check failed", "error", err)
	}

	// Donation events nudge the exporter between polls. The journal is
	// the source of truth, so a missed event only delays the row until
	// the next poll cycle.
	if cfg.AMQPURL != "" {
		events, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client, relying on polling only", "error", err)
		} else {
			defer events.Close()
			go func() {
				handler := func(msg *amqp.DonationRecordedMessage) error {
					slog.Info("Donation event received", "donation_id", msg.DonationID)
					return exporter.ExportPending(ctx)
				}
				if err := events.ConsumeDonationRecorded(ctx, handler); err != nil {
					if !errors.Is(err, context.Canceled) {
						logger.Error("Event consumption failed", "error", err)
					}
					cancel()
				}
			}()
			logger.Info("Consuming donation events", "queue", cfg.AMQPQueue)
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := exporter.Stop(stopCtx); err != nil {
		logger.Error("Export worker stop error", "error", err)
	}
	logger.Info("Worker stopped gracefully")
}
