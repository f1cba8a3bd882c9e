package services

import (
	"context"
	"fmt"
	"log/slog"

	"hoperaise/internal/donation"
)

// Download is a fetched receipt ready to hand to the browser.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReceiptService fetches donation receipts and turns remote failures
// into messages a donor can act on.
type ReceiptService struct {
	fetcher donation.ReceiptFetcher
}

func NewReceiptService(fetcher donation.ReceiptFetcher) *ReceiptService {
	return &ReceiptService{fetcher: fetcher}
}

// Fetch downloads the receipt for one donation. The returned filename is
// always donation_receipt_<id>.pdf regardless of what the backend serves.
func (s *ReceiptService) Fetch(ctx context.Context, donationID int64) (Download, error) {
	rec, err := s.fetcher.FetchReceipt(ctx, donationID)
	if err != nil {
		slog.WarnContext(ctx, "receipt fetch failed",
			"donation_id", donationID, "error", err)
		return Download{}, err
	}

	ct := rec.ContentType
	if ct == "" {
		ct = "application/pdf"
	}

	return Download{
		Filename:    ReceiptFilename(donationID),
		ContentType: ct,
		Data:        rec.Data,
	}, nil
}

// ReceiptFilename builds the download name for a donation receipt.
func ReceiptFilename(donationID int64) string {
	return fmt.Sprintf("donation_receipt_%d.pdf", donationID)
}

// ReceiptUserMessage maps a receipt fetch error to the message shown to
// the donor.
func ReceiptUserMessage(err error) string {
	switch {
	case donation.IsNotFound(err):
		return "Receipt not available for this donation (Donation not found)."
	case donation.IsServerError(err):
		return "Server error while generating receipt."
	default:
		return "Failed to download receipt. Please try again."
	}
}
