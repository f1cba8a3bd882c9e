package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"sort"

	"golang.org/x/sync/errgroup"

	"hoperaise/internal/core"
)

type rollupRow struct {
	Name   string
	Amount string
	Width  int
}

type donationRow struct {
	ID       int64
	Campaign string
	Category string
	Amount   string
	Date     string
	Message  string
}

// handleHistory renders the donor's donation history page.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	donor := s.currentDonor(r)
	if donor == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	items, err := s.history.ListByDonor(r.Context(), donor.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "donation history fetch failed",
			"donor_id", donor.ID, "error", err)
	}

	data := struct {
		Donor     *core.Donor
		Donations []donationRow
		Total     string
		Count     int
		Failed    bool
	}{
		Donor:  donor,
		Total:  formatRupees(core.TotalDonated(items)),
		Count:  core.Count(items),
		Failed: err != nil,
	}
	for _, d := range items {
		title := d.CampaignTitle
		if title == "" {
			title = core.FallbackTitle(d.CampaignID)
		}
		cat := d.CampaignCategory
		if cat == "" {
			cat = core.FallbackCategory
		}
		date := "-"
		if !d.DonatedAt.IsZero() {
			date = d.DonatedAt.Format("02 Jan 2006")
		}
		data.Donations = append(data.Donations, donationRow{
			ID:       d.ID,
			Campaign: title,
			Category: cat,
			Amount:   formatRupees(d.Amount),
			Date:     date,
			Message:  d.Message,
		})
	}

	if err := s.templates.ExecuteTemplate(w, "history.html", data); err != nil {
		slog.ErrorContext(r.Context(), "history template failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleDashboard renders the donor dashboard partial. The backend total,
// the donation list, and the campaign list load in parallel.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	donor := s.currentDonor(r)
	if donor == nil {
		_, _ = w.Write([]byte(`<div class="placeholder">Log in to see your dashboard.</div>`))
		return
	}

	var (
		total     core.Money
		items     []core.Donation
		campaigns []core.Campaign
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		total, err = s.summary.TotalByDonor(ctx, donor.ID)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.history.ListByDonor(ctx, donor.ID)
		return err
	})
	g.Go(func() error {
		return s.catalog.Refresh(ctx)
	})
	if err := g.Wait(); err != nil {
		slog.ErrorContext(r.Context(), "dashboard fetch failed",
			"donor_id", donor.ID, "error", err)
		_, _ = w.Write([]byte(`<div class="error">Failed to load dashboard. Please try again.</div>`))
		return
	}
	campaigns = s.catalog.Snapshot()

	data := struct {
		Donor       *core.Donor
		Total       string
		Count       int
		ByCategory  []rollupRow
		ByCampaign  []rollupRow
		TopCampaign string
	}{
		Donor: donor,
		Total: formatRupees(total),
		Count: core.Count(items),
	}
	data.ByCategory = rollupRows(core.ByCategory(items))
	data.ByCampaign = rollupRows(core.ByCampaignTitle(items))
	if top, ok := core.TopByCollected(campaigns); ok {
		data.TopCampaign = top.Title
	}

	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "dashboard template failed", "error", err)
		_, _ = w.Write([]byte(`<div class="error">Failed to render dashboard.</div>`))
	}
}

// rollupRows turns a rollup map into sorted bar rows scaled against the
// largest bucket.
func rollupRows(m map[string]core.Money) []rollupRow {
	names := make([]string, 0, len(m))
	var max int64
	for name, amt := range m {
		names = append(names, name)
		if amt.Paise > max {
			max = amt.Paise
		}
	}
	sort.Slice(names, func(i, j int) bool {
		if m[names[i]].Paise != m[names[j]].Paise {
			return m[names[i]].Paise > m[names[j]].Paise
		}
		return names[i] < names[j]
	})

	rows := make([]rollupRow, 0, len(names))
	for _, name := range names {
		amt := m[name]
		width := 0
		if max > 0 && amt.Paise > 0 {
			width = int((amt.Paise*100 + max/2) / max)
			if width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		rows = append(rows, rollupRow{
			Name:   template.HTMLEscapeString(name),
			Amount: formatRupees(amt),
			Width:  width,
		})
	}
	return rows
}
