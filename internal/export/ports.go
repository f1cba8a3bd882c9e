// Package export defines the outbound port for pushing recorded
// donations to an external spreadsheet.
package export

import (
	"context"

	"hoperaise/internal/storage"
)

// Appender writes journal entries to an external sheet. Implementations
// must be safe to call repeatedly with the same entries.
type Appender interface {
	AppendDonations(ctx context.Context, entries []storage.JournalEntry) error
}
