package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"hoperaise/internal/donation"
	"hoperaise/internal/services"
	appweb "hoperaise/web"
)

// handleReceipt streams a donation receipt as a file download.
func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/receipts/")
	if err != nil {
		http.Error(w, "invalid donation id", http.StatusBadRequest)
		return
	}

	donor := s.currentDonor(r)
	if donor == nil {
		http.Error(w, "Session expired. Please log in again.", http.StatusUnauthorized)
		return
	}

	dl, err := s.receipts.Fetch(r.Context(), id)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case donation.IsNotFound(err):
			status = http.StatusNotFound
		case donation.IsServerError(err):
			status = http.StatusBadGateway
		}
		http.Error(w, services.ReceiptUserMessage(err), status)
		return
	}

	w.Header().Set("Content-Type", dl.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(dl.Data)))
	_, _ = w.Write(dl.Data)
}

// handleCampaignImage proxies campaign images from the backend with a
// cache in front. Missing or failed images fall back to the embedded
// placeholder so campaign cards never break.
func (s *Server) handleCampaignImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/campaigns/image/")
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	key := strconv.FormatInt(id, 10)

	img, found := s.imageCache.Get(key)
	if !found {
		img, err = s.images.FetchCampaignImage(r.Context(), id)
		if err != nil {
			if !donation.IsNotFound(err) {
				slog.WarnContext(r.Context(), "campaign image fetch failed",
					"campaign_id", id, "error", err)
			}
			s.writePlaceholderImage(w)
			return
		}
		s.imageCache.Set(key, img)
	}

	ct := img.ContentType
	if ct == "" {
		ct = "image/jpeg"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "public, max-age=600")
	_, _ = w.Write(img.Data)
}

func (s *Server) writePlaceholderImage(w http.ResponseWriter) {
	data, err := appweb.StaticFS.ReadFile("static/placeholder.svg")
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=600")
	_, _ = w.Write(data)
}
