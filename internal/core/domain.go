package core

import (
	"errors"
	"strings"
	"time"
)

// Campaign status values as reported by the backend. Only Active campaigns
// are fundable through this portal.
const (
	StatusActive = "Active"
	StatusClosed = "Closed"
)

// Well-known campaign categories. The backend treats category as a free
// string; these cover the set the platform currently uses.
const (
	CategoryStartup     = "Startup"
	CategoryCharity     = "Charity"
	CategorySponsorship = "Sponsorship"
	CategoryHealthcare  = "Healthcare"
)

type (
	// Date is a calendar date without a meaningful time component, used
	// for campaign start and end dates.
	Date struct {
		time.Time
	}

	// Money is an exact amount in paise. All arithmetic in this package
	// is integer arithmetic; floats appear only at the wire and display
	// boundaries.
	Money struct {
		Paise int64
	}

	// Donor is the identity of the signed-in donor, sourced from a prior
	// login and held by the session store. Never mutated here.
	Donor struct {
		ID   int64
		Name string
	}

	// Campaign is a read-mostly cached copy of a backend campaign. The
	// server enforces 0 <= Collected <= Goal; the client must never
	// submit a donation that would break it.
	Campaign struct {
		ID          int64
		Title       string
		Description string
		Category    string
		Goal        Money
		Collected   Money
		Status      string
		StartDate   Date
		EndDate     Date
	}

	// Donation is an immutable contribution record, joined with the
	// campaign data the backend ships alongside it. Campaign fields may
	// be empty when the join is incomplete.
	Donation struct {
		ID               int64
		DonorID          int64
		CampaignID       int64
		CampaignTitle    string
		CampaignCategory string
		Amount           Money
		Message          string
		DonatedAt        time.Time
	}
)

var (
	ErrInvalidAmount       = errors.New("invalid donation amount")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrCampaignFullyFunded = errors.New("campaign fully funded")
	ErrEmptyName           = errors.New("empty donor name")
	ErrMessageTooLong      = errors.New("message too long (max 500 characters)")
)

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string as sent by the backend.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (m Money) Validate() error {
	if m.Paise <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// IsActive reports whether the campaign accepts donations.
func (c Campaign) IsActive() bool {
	return c.Status == StatusActive
}

func (d Donor) Validate() error {
	if d.ID <= 0 {
		return errors.New("invalid donor id")
	}
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (d Donation) Validate() error {
	if err := d.Amount.Validate(); err != nil {
		return err
	}
	if d.CampaignID <= 0 {
		return errors.New("donation must reference a campaign")
	}
	if len(d.Message) > 500 {
		return ErrMessageTooLong
	}
	return nil
}
