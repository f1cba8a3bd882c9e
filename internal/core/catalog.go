package core

import (
	"sort"
	"strings"
)

// ActiveByMostRecent returns the fundable subset of campaigns: status
// Active, ordered by start date descending. The input is not modified.
func ActiveByMostRecent(campaigns []Campaign) []Campaign {
	out := make([]Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if c.IsActive() {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate.Time)
	})
	return out
}

// FilterCampaigns applies the browse filters: a case-insensitive substring
// match of query against title, description or category (any field may
// match), AND'd with an exact case-insensitive category match. A category
// of "All" (or empty) passes everything.
func FilterCampaigns(campaigns []Campaign, query, category string) []Campaign {
	q := strings.ToLower(strings.TrimSpace(query))
	cat := strings.TrimSpace(category)
	all := cat == "" || strings.EqualFold(cat, "All")

	out := make([]Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Title), q) &&
			!strings.Contains(strings.ToLower(c.Description), q) &&
			!strings.Contains(strings.ToLower(c.Category), q) {
			continue
		}
		if !all && !strings.EqualFold(c.Category, cat) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// PercentFunded returns the funding progress as a whole percent, capped at
// 100. A zero goal counts as a goal of one to avoid dividing by zero.
func PercentFunded(c Campaign) int {
	goal := c.Goal.Paise
	if goal <= 0 {
		goal = 1
	}
	pct := int(c.Collected.Paise * 100 / goal)
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

// TopByCollected returns the campaign with the highest collected amount,
// or false when the list is empty.
func TopByCollected(campaigns []Campaign) (Campaign, bool) {
	if len(campaigns) == 0 {
		return Campaign{}, false
	}
	top := campaigns[0]
	for _, c := range campaigns[1:] {
		if c.Collected.Paise > top.Collected.Paise {
			top = c
		}
	}
	return top, true
}
