package core

import "strconv"

// FallbackCategory groups donations whose campaign category is unknown.
const FallbackCategory = "Other"

// ByCategory sums donation amounts grouped by campaign category. Donations
// with no category land under FallbackCategory so nothing is silently
// dropped. Summation is exact integer addition and order-independent.
func ByCategory(donations []Donation) map[string]Money {
	out := make(map[string]Money, len(donations))
	for _, d := range donations {
		key := d.CampaignCategory
		if key == "" {
			key = FallbackCategory
		}
		out[key] = Money{Paise: out[key].Paise + d.Amount.Paise}
	}
	return out
}

// FallbackTitle labels a donation whose campaign title is unknown.
func FallbackTitle(campaignID int64) string {
	return "Campaign " + strconv.FormatInt(campaignID, 10)
}

// ByCampaignTitle sums donation amounts grouped by campaign title. A
// missing title falls back to a label synthesized from the campaign id.
func ByCampaignTitle(donations []Donation) map[string]Money {
	out := make(map[string]Money, len(donations))
	for _, d := range donations {
		key := d.CampaignTitle
		if key == "" {
			key = FallbackTitle(d.CampaignID)
		}
		out[key] = Money{Paise: out[key].Paise + d.Amount.Paise}
	}
	return out
}

// TotalDonated returns the sum of all donation amounts.
func TotalDonated(donations []Donation) Money {
	var total int64
	for _, d := range donations {
		total += d.Amount.Paise
	}
	return Money{Paise: total}
}

// Count returns the number of donations.
func Count(donations []Donation) int {
	return len(donations)
}
