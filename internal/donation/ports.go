// Package donation defines the ports to the remote donation backend and
// the error taxonomy for classified remote failures. The backend owns the
// persisted truth; everything fetched through these ports is a
// client-visible cached copy.
package donation

import (
	"context"

	"hoperaise/internal/core"
)

// CreateRequest is the write payload for a new donation.
type CreateRequest struct {
	DonorID    int64
	CampaignID int64
	Amount     core.Money
	Message    string
}

// Receipt is an immutable binary receipt artifact for a past donation.
type Receipt struct {
	Data        []byte
	ContentType string
}

// Image is a campaign image as served by the backend.
type Image struct {
	Data        []byte
	ContentType string
}

// Ports for the backend collaborator.
type (
	CampaignLister interface {
		// ListCampaigns returns all campaigns, active or not.
		ListCampaigns(ctx context.Context) ([]core.Campaign, error)
	}

	ImageFetcher interface {
		FetchCampaignImage(ctx context.Context, campaignID int64) (Image, error)
	}

	DonationCreator interface {
		// CreateDonation issues exactly one write call; no retries.
		CreateDonation(ctx context.Context, req CreateRequest) (core.Donation, error)
	}

	DonationLister interface {
		// ListByDonor returns the donor's donations joined with campaign data.
		ListByDonor(ctx context.Context, donorID int64) ([]core.Donation, error)
	}

	SummaryReader interface {
		// TotalByDonor returns the donor's all-time donated total.
		TotalByDonor(ctx context.Context, donorID int64) (core.Money, error)
	}

	ReceiptFetcher interface {
		FetchReceipt(ctx context.Context, donationID int64) (Receipt, error)
	}
)

// Backend is the full collaborator surface, satisfied by the REST client
// and by the in-memory demo backend.
type Backend interface {
	CampaignLister
	ImageFetcher
	DonationCreator
	DonationLister
	SummaryReader
	ReceiptFetcher
}
