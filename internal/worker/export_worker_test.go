package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"hoperaise/internal/core"
	"hoperaise/internal/storage"
)

type fakeJournal struct {
	pending  []storage.JournalEntry
	exported []int64
	listErr  error
}

func (f *fakeJournal) ListPending(_ context.Context, limit int) ([]storage.JournalEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit > len(f.pending) {
		limit = len(f.pending)
	}
	return f.pending[:limit], nil
}

func (f *fakeJournal) MarkExported(_ context.Context, ids []int64) error {
	f.exported = append(f.exported, ids...)
	return nil
}

type fakeAppender struct {
	batches [][]storage.JournalEntry
	err     error
}

func (f *fakeAppender) AppendDonations(_ context.Context, entries []storage.JournalEntry) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, entries)
	return nil
}

func entry(id int64) storage.JournalEntry {
	return storage.JournalEntry{
		ID:         id,
		DonationID: 100 + id,
		DonorID:    7,
		CampaignID: 1,
		Amount:     core.Money{Paise: 5000},
		DonatedAt:  time.Now(),
	}
}

func TestExportPendingMarksBatch(t *testing.T) {
	journal := &fakeJournal{pending: []storage.JournalEntry{entry(1), entry(2), entry(3)}}
	appender := &fakeAppender{}
	w := NewExportWorker(journal, appender, Config{BatchSize: 2})

	if err := w.ExportPending(context.Background()); err != nil {
		t.Fatalf("ExportPending failed: %v", err)
	}

	if len(appender.batches) != 1 || len(appender.batches[0]) != 2 {
		t.Fatalf("expected one batch of 2, got %v", appender.batches)
	}
	if len(journal.exported) != 2 || journal.exported[0] != 1 || journal.exported[1] != 2 {
		t.Errorf("exported ids = %v, want [1 2]", journal.exported)
	}
}

func TestExportPendingNothingToDo(t *testing.T) {
	journal := &fakeJournal{}
	appender := &fakeAppender{err: errors.New("should not be called")}
	w := NewExportWorker(journal, appender, Config{})

	if err := w.ExportPending(context.Background()); err != nil {
		t.Fatalf("empty journal should be a no-op, got %v", err)
	}
}

func TestExportPendingAppendFailureLeavesPending(t *testing.T) {
	journal := &fakeJournal{pending: []storage.JournalEntry{entry(1)}}
	appender := &fakeAppender{err: errors.New("sheet unavailable")}
	w := NewExportWorker(journal, appender, Config{})

	if err := w.ExportPending(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(journal.exported) != 0 {
		t.Errorf("entries must stay pending after a failed append, exported = %v", journal.exported)
	}
}

func TestStartTwice(t *testing.T) {
	w := NewExportWorker(&fakeJournal{}, &fakeAppender{}, Config{PollInterval: time.Hour})
	ctx := context.Background()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	defer w.Stop(ctx)

	if err := w.Start(ctx); err == nil {
		t.Fatal("second Start should fail")
	}
	if !w.IsRunning() {
		t.Error("worker should report running")
	}
}

func TestStopIdempotent(t *testing.T) {
	w := NewExportWorker(&fakeJournal{}, &fakeAppender{}, Config{PollInterval: time.Hour})
	ctx := context.Background()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := w.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if w.IsRunning() {
		t.Error("worker should report stopped")
	}
	if err := w.Stop(ctx); err != nil {
		t.Fatalf("second Stop should be a no-op, got %v", err)
	}
}
