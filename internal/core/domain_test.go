package core

import (
	"strings"
	"testing"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-15")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2025 || int(d.Month()) != 6 || d.Day() != 15 {
		t.Fatalf("unexpected date %v", d)
	}
	if _, err := ParseDate("15/06/2025"); err == nil {
		t.Fatalf("expected error for wrong format")
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Paise: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Paise: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Paise: -10}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestDonorValidate(t *testing.T) {
	if err := (Donor{ID: 1, Name: "Asha"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Donor{ID: 0, Name: "Asha"}).Validate(); err == nil {
		t.Fatalf("expected error for missing id")
	}
	if err := (Donor{ID: 1, Name: "  "}).Validate(); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestDonationValidate(t *testing.T) {
	good := Donation{CampaignID: 7, Amount: Money{Paise: 100}, Message: "keep going"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Donation{
		{CampaignID: 7, Amount: Money{Paise: 0}},
		{CampaignID: 0, Amount: Money{Paise: 100}},
		{CampaignID: 7, Amount: Money{Paise: 100}, Message: strings.Repeat("x", 501)},
	}
	for i, d := range bads {
		if err := d.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCampaignIsActive(t *testing.T) {
	if !(Campaign{Status: StatusActive}).IsActive() {
		t.Fatalf("expected active")
	}
	if (Campaign{Status: StatusClosed}).IsActive() {
		t.Fatalf("expected inactive")
	}
}
