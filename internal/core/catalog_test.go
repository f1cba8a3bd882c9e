package core

import "testing"

func sampleCampaigns() []Campaign {
	return []Campaign{
		{ID: 1, Title: "Clean Water", Description: "Wells for villages", Category: CategoryCharity, Status: StatusActive, StartDate: NewDate(2025, 3, 1)},
		{ID: 2, Title: "Robotics Lab", Description: "School robotics kit", Category: CategoryStartup, Status: StatusActive, StartDate: NewDate(2025, 6, 15)},
		{ID: 3, Title: "Old Drive", Description: "Finished long ago", Category: CategoryCharity, Status: StatusClosed, StartDate: NewDate(2024, 1, 1)},
		{ID: 4, Title: "Heart Surgery Fund", Description: "Urgent care support", Category: CategoryHealthcare, Status: StatusActive, StartDate: NewDate(2025, 5, 10)},
	}
}

func TestActiveByMostRecent(t *testing.T) {
	got := ActiveByMostRecent(sampleCampaigns())
	if len(got) != 3 {
		t.Fatalf("expected 3 active campaigns, got %d", len(got))
	}
	wantOrder := []int64{2, 4, 1} // start date descending
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d: expected id %d, got %d", i, id, got[i].ID)
		}
	}
}

func TestActiveByMostRecentDoesNotMutateInput(t *testing.T) {
	in := sampleCampaigns()
	_ = ActiveByMostRecent(in)
	if in[0].ID != 1 || in[3].ID != 4 {
		t.Fatalf("input slice was reordered")
	}
}

func TestFilterCampaigns(t *testing.T) {
	campaigns := ActiveByMostRecent(sampleCampaigns())
	cases := []struct {
		query, category string
		wantIDs         []int64
	}{
		{"", "All", []int64{2, 4, 1}},
		{"", "", []int64{2, 4, 1}},
		{"water", "All", []int64{1}},       // title match
		{"ROBOTICS", "All", []int64{2}},    // case-insensitive, also in description
		{"health", "All", []int64{4}},      // category substring counts as a match
		{"", "charity", []int64{1}},        // category equality is case-insensitive
		{"urgent", CategoryCharity, nil},   // both predicates must hold
		{"urgent", "Healthcare", []int64{4}},
		{"nothing-matches", "All", nil},
	}
	for _, tc := range cases {
		got := FilterCampaigns(campaigns, tc.query, tc.category)
		if len(got) != len(tc.wantIDs) {
			t.Fatalf("query=%q category=%q: expected %d results, got %d", tc.query, tc.category, len(tc.wantIDs), len(got))
		}
		for i, id := range tc.wantIDs {
			if got[i].ID != id {
				t.Fatalf("query=%q category=%q: position %d expected id %d, got %d", tc.query, tc.category, i, id, got[i].ID)
			}
		}
	}
}

func TestPercentFunded(t *testing.T) {
	cases := []struct {
		goal, collected int64
		want            int
	}{
		{100000, 40000, 40},
		{100000, 100000, 100},
		{100000, 150000, 100}, // capped
		{0, 500, 100},         // zero goal treated as one
		{100000, 0, 0},
	}
	for i, tc := range cases {
		c := Campaign{Goal: Money{Paise: tc.goal}, Collected: Money{Paise: tc.collected}}
		if got := PercentFunded(c); got != tc.want {
			t.Fatalf("case %d: expected %d%%, got %d%%", i, tc.want, got)
		}
	}
}

func TestTopByCollected(t *testing.T) {
	if _, ok := TopByCollected(nil); ok {
		t.Fatalf("expected no top campaign for empty list")
	}
	campaigns := []Campaign{
		{ID: 1, Collected: Money{Paise: 100}},
		{ID: 2, Collected: Money{Paise: 900}},
		{ID: 3, Collected: Money{Paise: 500}},
	}
	top, ok := TopByCollected(campaigns)
	if !ok || top.ID != 2 {
		t.Fatalf("expected campaign 2, got %+v (ok=%v)", top, ok)
	}
}
