// Package http serves the donor portal: the campaign catalog, the
// donation form, the donor dashboard, and receipt downloads. Pages are
// rendered server side with htmx partials for the dynamic pieces.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"hoperaise/internal/cache"
	"hoperaise/internal/donation"
	"hoperaise/internal/middleware/ratelimit"
	"hoperaise/internal/middleware/security"
	"hoperaise/internal/middleware/trace"
	"hoperaise/internal/services"
	"hoperaise/internal/session"
	appweb "hoperaise/web"
)

type Server struct {
	http.Server
	templates *template.Template

	catalog   *services.Catalog
	donations *services.DonationService
	receipts  *services.ReceiptService
	sessions  session.Store

	images  donation.ImageFetcher
	history donation.DonationLister
	summary donation.SummaryReader

	rateLimiter *ratelimit.Limiter
	tracer      *trace.Middleware
	headers     *security.HeadersMiddleware

	// Campaign images rarely change; cache them to keep the backend off
	// the hot path for grid renders.
	imageCache *cache.LRUCache[donation.Image]
	caches     *cache.Manager

	shutdownOnce sync.Once
}

// Deps bundles everything the server needs.
type Deps struct {
	Catalog   *services.Catalog
	Donations *services.DonationService
	Receipts  *services.ReceiptService
	Sessions  session.Store
	Images    donation.ImageFetcher
	History   donation.DonationLister
	Summary   donation.SummaryReader
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		catalog:     deps.Catalog,
		donations:   deps.Donations,
		receipts:    deps.Receipts,
		sessions:    deps.Sessions,
		images:      deps.Images,
		history:     deps.History,
		summary:     deps.Summary,
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		tracer:      trace.NewMiddleware(clientIP),
		headers:     security.NewHeadersMiddleware(security.DefaultHeadersConfig()),
		imageCache:  cache.NewLRUCache[donation.Image](100, 10*time.Minute),
		caches:      cache.NewManager(),
	}

	s.caches.Register(s.imageCache)
	s.caches.StartCleanup(10 * time.Minute)

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("failed parsing templates", "error", err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		slog.Warn("failed to mount embedded static fs", "error", err)
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/", s.protected(s.handleIndex))
	mux.HandleFunc("/donate", s.protected(s.handleDonate))
	mux.HandleFunc("/history", s.protected(s.handleHistory))
	mux.HandleFunc("/session/login", s.protected(s.handleLogin))
	mux.HandleFunc("/session/logout", s.protected(s.handleLogout))
	mux.HandleFunc("/receipts/", s.protected(s.handleReceipt))
	mux.HandleFunc("/campaigns/image/", s.protected(s.handleCampaignImage))

	// UI partials
	mux.HandleFunc("/ui/campaigns", s.protected(s.handleCampaignGrid))
	mux.HandleFunc("/ui/dashboard", s.protected(s.handleDashboard))

	return s
}

// protected chains tracing, security headers, and rate limiting for POSTs.
func (s *Server) protected(next http.HandlerFunc) http.HandlerFunc {
	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && !s.rateLimiter.Allow(clientIP(r)) {
			slog.WarnContext(r.Context(), "rate limit exceeded",
				"client_ip", clientIP(r), "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	})
	return s.tracer.Middleware(s.headers.Middleware(limited)).ServeHTTP
}

// Shutdown stops background cleanup and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
