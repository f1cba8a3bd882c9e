// Package worker runs the background export loop that drains the local
// donation journal into the configured spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hoperaise/internal/export"
	"hoperaise/internal/storage"
)

// PendingJournal is the journal surface the worker needs. Implemented by
// storage.SQLiteRepository.
type PendingJournal interface {
	ListPending(ctx context.Context, limit int) ([]storage.JournalEntry, error)
	MarkExported(ctx context.Context, ids []int64) error
}

// Config holds the export loop settings.
type Config struct {
	// PollInterval is how often the journal is checked for pending entries.
	PollInterval time.Duration

	// BatchSize is the max number of entries exported per cycle.
	BatchSize int
}

func DefaultConfig() Config {
	return Config{
		PollInterval: 30 * time.Second,
		BatchSize:    10,
	}
}

// ExportWorker periodically moves pending journal entries to the sheet.
// Entries are marked exported only after a successful append, so a failed
// cycle leaves them pending for the next one.
type ExportWorker struct {
	journal  PendingJournal
	appender export.Appender
	config   Config

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewExportWorker(journal PendingJournal, appender export.Appender, config Config) *ExportWorker {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultConfig().PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}
	return &ExportWorker{
		journal:  journal,
		appender: appender,
		config:   config,
	}
}

// Start begins the export loop. Returns an error if already running.
func (w *ExportWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("export worker is already running")
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.runLoop(ctx)

	slog.InfoContext(ctx, "export worker started",
		"poll_interval", w.config.PollInterval,
		"batch_size", w.config.BatchSize)
	return nil
}

// Stop stops the loop and waits for the current cycle to finish.
func (w *ExportWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)

	select {
	case <-w.doneCh:
		slog.InfoContext(ctx, "export worker stopped")
	case <-ctx.Done():
		slog.WarnContext(ctx, "export worker stop timed out")
		return ctx.Err()
	}

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
	return nil
}

func (w *ExportWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *ExportWorker) runLoop(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.ExportPending(ctx); err != nil {
				slog.ErrorContext(ctx, "export cycle failed", "error", err)
			}
		}
	}
}

// ExportPending runs one export cycle: fetch a batch of pending entries,
// append them to the sheet, then mark them exported.
func (w *ExportWorker) ExportPending(ctx context.Context) error {
	entries, err := w.journal.ListPending(ctx, w.config.BatchSize)
	if err != nil {
		return fmt.Errorf("list pending: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	if err := w.appender.AppendDonations(ctx, entries); err != nil {
		return fmt.Errorf("append donations: %w", err)
	}

	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	if err := w.journal.MarkExported(ctx, ids); err != nil {
		return fmt.Errorf("mark exported: %w", err)
	}

	slog.InfoContext(ctx, "exported donation batch", "count", len(entries))
	return nil
}
