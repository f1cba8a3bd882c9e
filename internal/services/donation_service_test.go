package services

import (
	"context"
	"errors"
	"testing"

	"hoperaise/internal/core"
	"hoperaise/internal/donation"
	"hoperaise/internal/session"
	"hoperaise/internal/storage"
)

type fakeCreator struct {
	calls int
	err   error
}

func (f *fakeCreator) CreateDonation(_ context.Context, req donation.CreateRequest) (core.Donation, error) {
	f.calls++
	if f.err != nil {
		return core.Donation{}, f.err
	}
	return core.Donation{
		ID:         101,
		DonorID:    req.DonorID,
		CampaignID: req.CampaignID,
		Amount:     req.Amount,
		Message:    req.Message,
	}, nil
}

type fakeJournal struct {
	entries []storage.JournalEntry
}

func (f *fakeJournal) RecordDonation(_ context.Context, e storage.JournalEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func newTestService(t *testing.T, creator *fakeCreator, loggedIn bool) (*DonationService, *Catalog, *fakeJournal) {
	t.Helper()

	sessions := session.NewMemory()
	if loggedIn {
		if err := sessions.Save(context.Background(), core.Donor{ID: 7, Name: "Asha"}); err != nil {
			t.Fatalf("save donor: %v", err)
		}
	}

	catalog := NewCatalog(&fakeLister{campaigns: testCampaigns()})
	if err := catalog.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	journal := &fakeJournal{}
	return NewDonationService(sessions, catalog, creator, journal, nil), catalog, journal
}

func TestSubmitSuccessReconcilesAndJournals(t *testing.T) {
	creator := &fakeCreator{}
	svc, catalog, journal := newTestService(t, creator, true)

	conf, err := svc.Submit(context.Background(), 1, "250", "keep it up")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if creator.calls != 1 {
		t.Errorf("expected exactly one backend write, got %d", creator.calls)
	}
	if conf.DonorName != "Asha" || conf.CampaignTitle != "Clean Water" || conf.DonationID != 101 {
		t.Errorf("unexpected confirmation: %+v", conf)
	}
	if conf.Amount.Paise != 25000 {
		t.Errorf("amount = %d paise, want 25000", conf.Amount.Paise)
	}

	c, _ := catalog.Find(1)
	if c.Collected.Paise != 65000 {
		t.Errorf("collected after reconcile = %d, want 65000", c.Collected.Paise)
	}

	if len(journal.entries) != 1 {
		t.Fatalf("expected 1 journal entry, got %d", len(journal.entries))
	}
	if journal.entries[0].CampaignTitle != "Clean Water" || journal.entries[0].DonationID != 101 {
		t.Errorf("journal entry = %+v", journal.entries[0])
	}
	if journal.entries[0].DonorName != "Asha" {
		t.Errorf("journal entry DonorName = %q, want %q", journal.entries[0].DonorName, "Asha")
	}
}

func TestSubmitWithoutSessionMakesNoNetworkCall(t *testing.T) {
	creator := &fakeCreator{}
	svc, _, _ := newTestService(t, creator, false)

	_, err := svc.Submit(context.Background(), 1, "100", "")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if creator.calls != 0 {
		t.Errorf("expected no backend write, got %d", creator.calls)
	}
}

func TestSubmitExceedsRemainingMakesNoNetworkCall(t *testing.T) {
	creator := &fakeCreator{}
	svc, _, _ := newTestService(t, creator, true)

	// Campaign 1 has 600 rupees remaining.
	_, err := svc.Submit(context.Background(), 1, "700", "")

	var exceeds *core.ExceedsRemainingError
	if !errors.As(err, &exceeds) {
		t.Fatalf("expected ExceedsRemainingError, got %v", err)
	}
	if exceeds.Remaining.Paise != 60000 {
		t.Errorf("reported remaining = %d, want 60000", exceeds.Remaining.Paise)
	}
	if creator.calls != 0 {
		t.Errorf("expected no backend write, got %d", creator.calls)
	}
}

func TestSubmitInvalidAmountMakesNoNetworkCall(t *testing.T) {
	creator := &fakeCreator{}
	svc, _, _ := newTestService(t, creator, true)

	for _, input := range []string{"", "abc", "0", "-5"} {
		_, err := svc.Submit(context.Background(), 1, input, "")
		if !errors.Is(err, core.ErrInvalidAmount) {
			t.Errorf("input %q: expected ErrInvalidAmount, got %v", input, err)
		}
	}
	if creator.calls != 0 {
		t.Errorf("expected no backend writes, got %d", creator.calls)
	}
}

func TestSubmitUnknownCampaign(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeCreator{}, true)

	_, err := svc.Submit(context.Background(), 999, "100", "")
	if !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestSubmitBackendFailureLeavesCacheUntouched(t *testing.T) {
	creator := &fakeCreator{err: &donation.RemoteError{StatusCode: 400, Message: "Campaign not found"}}
	svc, catalog, journal := newTestService(t, creator, true)

	_, err := svc.Submit(context.Background(), 1, "250", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if creator.calls != 1 {
		t.Errorf("expected exactly one attempt, got %d", creator.calls)
	}

	c, _ := catalog.Find(1)
	if c.Collected.Paise != 40000 {
		t.Errorf("cache changed after failed write, collected = %d", c.Collected.Paise)
	}
	if len(journal.entries) != 0 {
		t.Errorf("nothing should be journaled after a failed write, got %d entries", len(journal.entries))
	}
}
