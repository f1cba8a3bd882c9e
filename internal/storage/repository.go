// Package storage is the portal's local SQLite persistence: the signed-in
// donor's session record and the donation journal the export worker drains
// into Google Sheets. The backend remains the source of truth for
// donations themselves; the journal is an audit/export convenience.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"hoperaise/internal/core"
	"hoperaise/internal/session"

	_ "modernc.org/sqlite"
)

// JournalEntry is one confirmed donation recorded locally, pending or
// already exported.
type JournalEntry struct {
	ID               int64
	DonationID       int64
	DonorID          int64
	DonorName        string
	CampaignID       int64
	CampaignTitle    string
	CampaignCategory string
	Amount           core.Money
	Message          string
	DonatedAt        time.Time
	ExportedAt       *time.Time
}

type SQLiteRepository struct {
	db *sql.DB
}

var _ session.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Current implements session.Store.
func (r *SQLiteRepository) Current(ctx context.Context) (*core.Donor, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT donor_id, donor_name FROM session_records WHERE key = ?`, session.CurrentDonorKey)

	var donor core.Donor
	if err := row.Scan(&donor.ID, &donor.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session record: %w", err)
	}
	return &donor, nil
}

// Save implements session.Store; the record is replaced in full.
func (r *SQLiteRepository) Save(ctx context.Context, donor core.Donor) error {
	if err := donor.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_records (key, donor_id, donor_name, saved_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET donor_id = excluded.donor_id,
		                                donor_name = excluded.donor_name,
		                                saved_at = excluded.saved_at`,
		session.CurrentDonorKey, donor.ID, donor.Name, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save session record: %w", err)
	}
	return nil
}

// Clear implements session.Store.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM session_records WHERE key = ?`, session.CurrentDonorKey); err != nil {
		return fmt.Errorf("clear session record: %w", err)
	}
	return nil
}

// RecordDonation appends a confirmed donation to the journal. Recording
// the same donation twice is a no-op, so a replayed confirmation cannot
// double-export.
func (r *SQLiteRepository) RecordDonation(ctx context.Context, e JournalEntry) error {
	if err := (core.Donation{CampaignID: e.CampaignID, Amount: e.Amount, Message: e.Message}).Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO journal_entries
		   (donation_id, donor_id, donor_name, campaign_id, campaign_title, campaign_category, amount_paise, message, donated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(donation_id) DO NOTHING`,
		e.DonationID, e.DonorID, e.DonorName, e.CampaignID, e.CampaignTitle, e.CampaignCategory,
		e.Amount.Paise, e.Message, e.DonatedAt.UTC())
	if err != nil {
		return fmt.Errorf("record donation %d: %w", e.DonationID, err)
	}

	slog.InfoContext(ctx, "Donation journaled",
		"donation_id", e.DonationID,
		"campaign_id", e.CampaignID,
		"amount_paise", e.Amount.Paise)
	return nil
}

// ListPending returns up to limit journal entries not yet exported, oldest
// first.
func (r *SQLiteRepository) ListPending(ctx context.Context, limit int) ([]JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, donation_id, donor_id, donor_name, campaign_id, campaign_title, campaign_category,
		        amount_paise, message, donated_at
		 FROM journal_entries
		 WHERE exported_at IS NULL
		 ORDER BY id
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending journal entries: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var paise int64
		if err := rows.Scan(&e.ID, &e.DonationID, &e.DonorID, &e.DonorName, &e.CampaignID,
			&e.CampaignTitle, &e.CampaignCategory, &paise, &e.Message, &e.DonatedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.Amount = core.Money{Paise: paise}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return entries, nil
}

// MarkExported stamps the given journal entries as exported.
func (r *SQLiteRepository) MarkExported(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mark exported: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE journal_entries SET exported_at = ? WHERE id = ?`, now, id); err != nil {
			return fmt.Errorf("mark entry %d exported: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mark exported: %w", err)
	}
	return nil
}
