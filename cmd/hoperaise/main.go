package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hoperaise/internal/amqp"
	"hoperaise/internal/config"
	"hoperaise/internal/donation"
	"hoperaise/internal/donation/memory"
	"hoperaise/internal/donation/rest"
	apphttp "hoperaise/internal/http"
	applog "hoperaise/internal/log"
	"hoperaise/internal/services"
	"hoperaise/internal/session"
	"hoperaise/internal/storage"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var backend donation.Backend
	switch cfg.DataBackend {
	case "rest":
		backend = rest.New(cfg.APIBaseURL, cfg.RequestTimeout)
		logger.Info("Initialized REST backend", "base_url", cfg.APIBaseURL)
	default:
		backend = memory.NewSeeded()
		logger.Info("Initialized memory backend")
	}

	// Local store for the donor session and the donation journal. Falls
	// back to an in-memory session when SQLite cannot open.
	var (
		sessions session.Store
		journal  services.Journal
	)
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open local database, sessions will not survive restarts",
			"error", err, "path", cfg.SQLiteDBPath)
		sessions = session.NewMemory()
	} else {
		defer repo.Close()
		sessions = repo
		journal = repo
	}

	var events *amqp.Client
	if cfg.AMQPURL != "" {
		events, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client, donation events disabled", "error", err)
			events = nil
		} else {
			defer events.Close()
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange)
		}
	}

	catalog := services.NewCatalog(backend)
	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Catalog:   catalog,
		Donations: services.NewDonationService(sessions, catalog, backend, journal, events),
		Receipts:  services.NewReceiptService(backend),
		Sessions:  sessions,
		Images:    backend,
		History:   backend,
		Summary:   backend,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting hoperaise server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
