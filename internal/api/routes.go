package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stockfolio/config"
)

// NewRouter creates and configures a Chi router with all routes
func NewRouter(h *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(CORSMiddleware(cfg.HTTP.CORSAllowedOrigins))
	r.Use(MetricsMiddleware)

	// Metrics endpoint for Prometheus
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", h.HandleHealth)

		// Open positions
		r.Route("/positions", func(r chi.Router) {
			r.Get("/", h.HandleGetPositions)
			r.Post("/", h.HandleOpenPosition)
			r.Delete("/{id}", h.HandleDeletePosition)
			r.Post("/{id}/sell", h.HandleSellPosition)
		})

		// Closed positions
		r.Route("/closed", func(r chi.Router) {
			r.Get("/", h.HandleGetClosedPositions)
			r.Delete("/{id}", h.HandleDeleteClosedPosition)
			r.Put("/{id}/note", h.HandleAnnotatePosition)
		})

		// Dashboard
		r.Get("/summary", h.HandleGetSummary)
		r.Get("/sectors", h.HandleGetSectors)

		// Scanner
		r.Route("/scan", func(r chi.Router) {
			r.Post("/", h.HandleRunScan)
			r.Post("/open", h.HandleScanOpen)
		})
	})

	return r
}

// CORSMiddleware returns CORS middleware with the specified allowed origins
func CORSMiddleware(allowedOrigins string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
