package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"hoperaise/internal/core"
	"hoperaise/internal/donation"
	"hoperaise/internal/services"
)

// campaignView is the template-facing shape of one campaign card.
type campaignView struct {
	ID          int64
	Title       string
	Description string
	Category    string
	Goal        string
	Collected   string
	Remaining   string
	Percent     int
	FullyFunded bool
}

func viewOf(c core.Campaign) campaignView {
	rem := core.Remaining(c)
	return campaignView{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Goal:        formatRupees(c.Goal),
		Collected:   formatRupees(c.Collected),
		Remaining:   formatRupees(rem),
		Percent:     core.PercentFunded(c),
		FullyFunded: rem.Paise <= 0,
	}
}

func viewsOf(campaigns []core.Campaign) []campaignView {
	out := make([]campaignView, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, viewOf(c))
	}
	return out
}

func (s *Server) currentDonor(r *http.Request) *core.Donor {
	donor, err := s.sessions.Current(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "session read failed", "error", err)
		return nil
	}
	return donor
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	if err := s.catalog.Refresh(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "catalog refresh failed", "error", err)
	}

	donor := s.currentDonor(r)
	data := struct {
		Donor     *core.Donor
		Campaigns []campaignView
	}{
		Donor:     donor,
		Campaigns: viewsOf(s.catalog.Snapshot()),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "index template failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleCampaignGrid renders the filtered campaign grid partial.
func (s *Server) handleCampaignGrid(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	query := sanitizeInput(r.URL.Query().Get("q"))
	category := sanitizeInput(r.URL.Query().Get("category"))

	matched := core.FilterCampaigns(s.catalog.Snapshot(), query, category)

	data := struct {
		Campaigns []campaignView
		Query     string
		Category  string
	}{viewsOf(matched), query, category}

	if err := s.templates.ExecuteTemplate(w, "campaign_grid.html", data); err != nil {
		slog.ErrorContext(r.Context(), "campaign grid template failed", "error", err)
		_, _ = w.Write([]byte(`<div class="error">Failed to load campaigns.</div>`))
	}
}

func (s *Server) handleDonate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format.</div>`))
		return
	}

	campaignID, err := strconv.ParseInt(strings.TrimSpace(r.Form.Get("campaign_id")), 10, 64)
	if err != nil || campaignID <= 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Unknown campaign.</div>`))
		return
	}
	amountInput := strings.TrimSpace(r.Form.Get("amount"))
	message := sanitizeInput(r.Form.Get("message"))

	conf, err := s.donations.Submit(r.Context(), campaignID, amountInput, message)
	if err != nil {
		s.writeDonateError(w, r, err)
		return
	}

	w.Header().Set("HX-Trigger", `{"donation:created": {"campaign_id": `+strconv.FormatInt(conf.CampaignID, 10)+`}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Thank you, ` +
		template.HTMLEscapeString(conf.DonorName) + `! You donated ` +
		template.HTMLEscapeString(formatRupees(conf.Amount)) + ` to &quot;` +
		template.HTMLEscapeString(conf.CampaignTitle) + `&quot;.</div>`))
}

func (s *Server) writeDonateError(w http.ResponseWriter, r *http.Request, err error) {
	var exceeds *core.ExceedsRemainingError
	switch {
	case errors.Is(err, services.ErrSessionExpired), errors.Is(err, core.ErrNotAuthenticated):
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`<div class="error">Session expired. Please log in again.</div>`))
	case errors.Is(err, core.ErrCampaignFullyFunded):
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">This campaign is already fully funded.</div>`))
	case errors.Is(err, core.ErrInvalidAmount):
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Please enter a valid donation amount.</div>`))
	case errors.As(err, &exceeds):
		rem := template.HTMLEscapeString(formatRupees(exceeds.Remaining))
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Amount exceeds remaining goal (` + rem +
			`). Please enter ` + rem + ` or less.</div>`))
	case errors.Is(err, services.ErrCampaignNotFound):
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Unknown campaign.</div>`))
	case donation.IsTransport(err):
		slog.ErrorContext(r.Context(), "donation network failure", "error", err)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<div class="error">Network error. Please check your connection and try again.</div>`))
	default:
		slog.ErrorContext(r.Context(), "donation rejected", "error", err)
		msg := donation.RemoteMessage(err)
		if msg == "" {
			msg = "Donation failed. Please try again."
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(r.Form.Get("donor_id")), 10, 64)
	if err != nil {
		http.Error(w, "invalid donor id", http.StatusUnprocessableEntity)
		return
	}
	donor := core.Donor{ID: id, Name: sanitizeInput(r.Form.Get("name"))}
	if err := donor.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := s.sessions.Save(r.Context(), donor); err != nil {
		slog.ErrorContext(r.Context(), "session save failed", "error", err)
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(r.Context(), "donor logged in", "donor_id", donor.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := s.sessions.Clear(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "session clear failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
