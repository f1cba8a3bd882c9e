package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hoperaise/internal/amqp"
	"hoperaise/internal/core"
	"hoperaise/internal/donation"
	"hoperaise/internal/session"
	"hoperaise/internal/storage"
)

// ErrSessionExpired reports that the donor session vanished between page
// load and submission. The user has to log in again.
var ErrSessionExpired = errors.New("session expired, please log in again")

// ErrCampaignNotFound reports a donation aimed at a campaign the catalog
// no longer knows about.
var ErrCampaignNotFound = errors.New("campaign not found")

// Journal records confirmed donations for later export. Implemented by
// storage.SQLiteRepository.
type Journal interface {
	RecordDonation(ctx context.Context, e storage.JournalEntry) error
}

// Confirmation is what a successful submission hands back to the UI.
type Confirmation struct {
	DonationID    int64
	DonorName     string
	CampaignID    int64
	CampaignTitle string
	Amount        core.Money
}

// DonationService orchestrates a donation submission: session check,
// funding validation against the cached campaign, exactly one backend
// write, then local reconciliation, journaling, and a best-effort event.
type DonationService struct {
	sessions session.Store
	catalog  *Catalog
	creator  donation.DonationCreator
	journal  Journal
	events   *amqp.Client
}

func NewDonationService(sessions session.Store, catalog *Catalog, creator donation.DonationCreator, journal Journal, events *amqp.Client) *DonationService {
	return &DonationService{
		sessions: sessions,
		catalog:  catalog,
		creator:  creator,
		journal:  journal,
		events:   events,
	}
}

// Submit validates and performs one donation. Validation failures return
// before any network call is made. The backend write is issued exactly
// once and never retried; on success the cached campaign is bumped by
// the donated amount so the UI reflects the donation immediately.
func (s *DonationService) Submit(ctx context.Context, campaignID int64, amountInput, message string) (Confirmation, error) {
	donor, err := s.sessions.Current(ctx)
	if err != nil {
		return Confirmation{}, fmt.Errorf("read session: %w", err)
	}
	if donor == nil {
		return Confirmation{}, ErrSessionExpired
	}

	campaign, ok := s.catalog.Find(campaignID)
	if !ok {
		return Confirmation{}, ErrCampaignNotFound
	}

	amount, err := core.ValidateDonation(campaign, donor, amountInput)
	if err != nil {
		return Confirmation{}, err
	}

	if err := (core.Donation{DonorID: donor.ID, CampaignID: campaignID, Amount: amount, Message: message}).Validate(); err != nil {
		return Confirmation{}, err
	}

	created, err := s.creator.CreateDonation(ctx, donation.CreateRequest{
		DonorID:    donor.ID,
		CampaignID: campaignID,
		Amount:     amount,
		Message:    message,
	})
	if err != nil {
		return Confirmation{}, fmt.Errorf("create donation: %w", err)
	}

	s.catalog.ApplyDonation(campaignID, amount)

	s.recordJournal(ctx, created, *donor, campaign)
	s.publishRecorded(ctx, created)

	slog.InfoContext(ctx, "donation submitted",
		"donation_id", created.ID,
		"donor_id", donor.ID,
		"campaign_id", campaignID,
		"amount_paise", amount.Paise)

	return Confirmation{
		DonationID:    created.ID,
		DonorName:     donor.Name,
		CampaignID:    campaignID,
		CampaignTitle: campaign.Title,
		Amount:        amount,
	}, nil
}

// recordJournal stores the confirmed donation in the local journal.
// A journal failure is logged, not surfaced: the backend write already
// succeeded and must not look failed to the donor.
func (s *DonationService) recordJournal(ctx context.Context, d core.Donation, donor core.Donor, campaign core.Campaign) {
	if s.journal == nil {
		return
	}
	entry := storage.JournalEntry{
		DonationID:       d.ID,
		DonorID:          d.DonorID,
		DonorName:        donor.Name,
		CampaignID:       d.CampaignID,
		CampaignTitle:    campaign.Title,
		CampaignCategory: campaign.Category,
		Amount:           d.Amount,
		Message:          d.Message,
		DonatedAt:        d.DonatedAt,
	}
	if err := s.journal.RecordDonation(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "failed to journal donation",
			"donation_id", d.ID, "error", err)
	}
}

func (s *DonationService) publishRecorded(ctx context.Context, d core.Donation) {
	if s.events == nil {
		return
	}
	msg := amqp.NewDonationRecordedMessage(d.ID, d.DonorID, d.CampaignID, d.Amount.Paise)
	if err := s.events.PublishDonationRecorded(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to publish donation event",
			"donation_id", d.ID, "error", err)
	}
}
