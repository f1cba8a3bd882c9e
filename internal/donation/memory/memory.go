// Package memory is an in-memory stand-in for the donation backend, used
// for local development and tests. It applies the same write-side rules
// the real backend enforces so the portal behaves realistically offline.
package memory

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"hoperaise/internal/core"
	"hoperaise/internal/donation"
)

type Store struct {
	mu        sync.Mutex
	campaigns []core.Campaign
	donations []core.Donation
	nextID    int64
}

// New creates a store seeded with the given campaigns.
func New(campaigns []core.Campaign) *Store {
	return &Store{
		campaigns: append([]core.Campaign(nil), campaigns...),
		nextID:    1,
	}
}

// NewSeeded creates a store with a small demo catalog.
func NewSeeded() *Store {
	now := time.Now()
	return New([]core.Campaign{
		{
			ID: 1, Title: "Clean Water for Taluka Schools",
			Description: "Bore wells and filters for twelve rural schools.",
			Category:    core.CategoryCharity, Status: core.StatusActive,
			Goal:      core.Money{Paise: 50_000_00},
			Collected: core.Money{Paise: 12_500_00},
			StartDate: core.NewDate(now.Year(), int(now.Month()), 1),
		},
		{
			ID: 2, Title: "Campus Robotics Lab",
			Description: "Seed funding for a student-run robotics workshop.",
			Category:    core.CategoryStartup, Status: core.StatusActive,
			Goal:      core.Money{Paise: 1_20_000_00},
			Collected: core.Money{Paise: 80_000_00},
			StartDate: core.NewDate(now.Year(), int(now.Month()), 5),
		},
		{
			ID: 3, Title: "Winter Marathon Sponsorship",
			Description: "Fully funded last season.",
			Category:    core.CategorySponsorship, Status: core.StatusClosed,
			Goal:      core.Money{Paise: 20_000_00},
			Collected: core.Money{Paise: 20_000_00},
			StartDate: core.NewDate(now.Year()-1, 11, 1),
		},
	})
}

var _ donation.Backend = (*Store)(nil)

// ListCampaigns implements donation.CampaignLister.
func (s *Store) ListCampaigns(_ context.Context) ([]core.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Campaign(nil), s.campaigns...), nil
}

// FetchCampaignImage always reports not found; the portal falls back to
// its embedded placeholder.
func (s *Store) FetchCampaignImage(_ context.Context, campaignID int64) (donation.Image, error) {
	return donation.Image{}, &donation.RemoteError{StatusCode: http.StatusNotFound, Message: "no image"}
}

// CreateDonation implements donation.DonationCreator, mirroring the
// backend's behavior: it records the donation and bumps the campaign's
// collected total.
func (s *Store) CreateDonation(_ context.Context, req donation.CreateRequest) (core.Donation, error) {
	if req.Amount.Paise <= 0 {
		return core.Donation{}, &donation.RemoteError{StatusCode: http.StatusBadRequest, Message: "amount must be positive"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.campaigns {
		if c.ID == req.CampaignID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return core.Donation{}, &donation.RemoteError{StatusCode: http.StatusBadRequest, Message: "Campaign not found"}
	}

	d := core.Donation{
		ID:               s.nextID,
		DonorID:          req.DonorID,
		CampaignID:       req.CampaignID,
		CampaignTitle:    s.campaigns[idx].Title,
		CampaignCategory: s.campaigns[idx].Category,
		Amount:           req.Amount,
		Message:          req.Message,
		DonatedAt:        time.Now(),
	}
	s.nextID++
	s.donations = append(s.donations, d)
	s.campaigns[idx].Collected = core.Money{Paise: s.campaigns[idx].Collected.Paise + req.Amount.Paise}
	return d, nil
}

// ListByDonor implements donation.DonationLister.
func (s *Store) ListByDonor(_ context.Context, donorID int64) ([]core.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Donation
	for _, d := range s.donations {
		if d.DonorID == donorID {
			out = append(out, d)
		}
	}
	return out, nil
}

// TotalByDonor implements donation.SummaryReader.
func (s *Store) TotalByDonor(_ context.Context, donorID int64) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, d := range s.donations {
		if d.DonorID == donorID {
			total += d.Amount.Paise
		}
	}
	return core.Money{Paise: total}, nil
}

// FetchReceipt implements donation.ReceiptFetcher with a plain-text
// stand-in artifact; unknown ids classify as not found like the backend.
func (s *Store) FetchReceipt(_ context.Context, donationID int64) (donation.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.donations {
		if d.ID == donationID {
			body := fmt.Sprintf("Donation Receipt\nReceipt ID: %d\nCampaign: %s\nAmount: %s\nDate: %s\n",
				d.ID, d.CampaignTitle, d.Amount, d.DonatedAt.Format("02 Jan 2006 15:04"))
			return donation.Receipt{Data: []byte(body), ContentType: "application/pdf"}, nil
		}
	}
	return donation.Receipt{}, &donation.RemoteError{StatusCode: http.StatusNotFound, Message: "Donation not found"}
}
