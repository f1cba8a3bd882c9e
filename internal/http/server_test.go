package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"hoperaise/internal/core"
	"hoperaise/internal/donation/memory"
	"hoperaise/internal/services"
	"hoperaise/internal/session"
)

func newTestServer(t *testing.T, loggedIn bool) *Server {
	t.Helper()

	backend := memory.NewSeeded()
	sessions := session.NewMemory()
	if loggedIn {
		if err := sessions.Save(context.Background(), core.Donor{ID: 7, Name: "Asha"}); err != nil {
			t.Fatalf("save donor: %v", err)
		}
	}

	catalog := services.NewCatalog(backend)
	srv := NewServer(":0", Deps{
		Catalog:   catalog,
		Donations: services.NewDonationService(sessions, catalog, backend, nil, nil),
		Receipts:  services.NewReceiptService(backend),
		Sessions:  sessions,
		Images:    backend,
		History:   backend,
		Summary:   backend,
	})
	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
	})
	return srv
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, false)
	for _, path := range []string{"/healthz", "/readyz"} {
		if rr := get(srv, path); rr.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rr.Code)
		}
	}
}

func TestIndexListsActiveCampaigns(t *testing.T) {
	srv := newTestServer(t, false)

	rr := get(srv, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("index status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Clean Water for Taluka Schools") {
		t.Error("index missing active campaign")
	}
	if strings.Contains(body, "Winter Marathon Sponsorship") {
		t.Error("index should not list closed campaigns")
	}
}

func TestCampaignGridFilter(t *testing.T) {
	srv := newTestServer(t, false)
	get(srv, "/") // prime the catalog

	rr := get(srv, "/ui/campaigns?q=robotics")
	if rr.Code != http.StatusOK {
		t.Fatalf("grid status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Campus Robotics Lab") {
		t.Error("filter should match robotics campaign")
	}
	if strings.Contains(body, "Clean Water") {
		t.Error("filter should exclude non-matching campaign")
	}
}

func TestDonateFormGuardsInFlightSubmits(t *testing.T) {
	srv := newTestServer(t, true)
	get(srv, "/")

	rr := get(srv, "/ui/campaigns")
	body := rr.Body.String()
	for _, attr := range []string{`hx-disabled-elt="find button"`, `hx-sync="this:drop"`, `hx-indicator="find .pending"`} {
		if !strings.Contains(body, attr) {
			t.Errorf("donate form missing %s", attr)
		}
	}
}

func TestDonateWithoutSession(t *testing.T) {
	srv := newTestServer(t, false)
	get(srv, "/")

	rr := postForm(srv, "/donate", url.Values{"campaign_id": {"1"}, "amount": {"100"}})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Session expired") {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestDonateInvalidAmount(t *testing.T) {
	srv := newTestServer(t, true)
	get(srv, "/")

	rr := postForm(srv, "/donate", url.Values{"campaign_id": {"1"}, "amount": {"abc"}})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "valid donation amount") {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestDonateExceedsRemainingShowsExactValue(t *testing.T) {
	srv := newTestServer(t, true)
	get(srv, "/")

	// Campaign 1 has ₹37500.00 remaining.
	rr := postForm(srv, "/donate", url.Values{"campaign_id": {"1"}, "amount": {"40000"}})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "₹37500.00") {
		t.Errorf("body should carry exact remaining, got %q", rr.Body.String())
	}
}

func TestDonateSuccess(t *testing.T) {
	srv := newTestServer(t, true)
	get(srv, "/")

	rr := postForm(srv, "/donate", url.Values{"campaign_id": {"1"}, "amount": {"250.50"}, "message": {"good luck"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %q", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Thank you, Asha!") || !strings.Contains(body, "₹250.50") {
		t.Errorf("body = %q", body)
	}
	if rr.Header().Get("HX-Trigger") == "" {
		t.Error("missing HX-Trigger header")
	}

	// Optimistic reconcile shows up on the next grid render.
	grid := get(srv, "/ui/campaigns?q=clean")
	if !strings.Contains(grid.Body.String(), "₹12750.50 raised") {
		t.Errorf("grid not reconciled: %q", grid.Body.String())
	}
}

func TestReceiptDownload(t *testing.T) {
	srv := newTestServer(t, true)
	get(srv, "/")
	postForm(srv, "/donate", url.Values{"campaign_id": {"1"}, "amount": {"100"}})

	rr := get(srv, "/receipts/1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %q", rr.Code, rr.Body.String())
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "donation_receipt_1.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestReceiptNotFound(t *testing.T) {
	srv := newTestServer(t, true)

	rr := get(srv, "/receipts/999")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Receipt not available") {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestCampaignImageFallsBackToPlaceholder(t *testing.T) {
	srv := newTestServer(t, false)

	rr := get(srv, "/campaigns/image/1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestDashboardPartial(t *testing.T) {
	srv := newTestServer(t, true)
	get(srv, "/")
	postForm(srv, "/donate", url.Values{"campaign_id": {"1"}, "amount": {"150"}})

	rr := get(srv, "/ui/dashboard")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "₹150.00") || !strings.Contains(body, "Charity") {
		t.Errorf("dashboard body = %q", body)
	}
}

func TestHistoryRedirectsWithoutSession(t *testing.T) {
	srv := newTestServer(t, false)

	rr := get(srv, "/history")
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rr.Code)
	}
}
