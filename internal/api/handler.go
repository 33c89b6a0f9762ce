package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockfolio/config"
	"stockfolio/internal/app"
	"stockfolio/portfolio"
	"stockfolio/services"
)

// Handler handles HTTP API requests
type Handler struct {
	app *app.App
	cfg *config.Config
}

// NewHandler creates a new Handler
func NewHandler(application *app.App, cfg *config.Config) *Handler {
	return &Handler{app: application, cfg: cfg}
}

// HandleHealth returns the health status of the application
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"services": map[string]string{
			"database": "unknown",
		},
	}

	if h.app.DB() != nil {
		if err := h.app.DB().Health(r.Context()); err == nil {
			status["services"].(map[string]string)["database"] = "connected"
		} else {
			status["services"].(map[string]string)["database"] = "disconnected"
			status["status"] = "degraded"
		}
	} else {
		status["services"].(map[string]string)["database"] = "not_configured"
	}

	cbStatus := services.GetGlobalRegistry().Status()
	status["circuit_breakers"] = cbStatus

	for _, cb := range cbStatus {
		if cb.State == "open" {
			status["status"] = "degraded"
			break
		}
	}

	h.jsonResponse(w, status)
}

// OpenPositionRequest is the payload for opening a position
type OpenPositionRequest struct {
	Ticker        string          `json:"ticker"`
	Name          string          `json:"name"`
	PurchaseDate  string          `json:"purchase_date"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int64           `json:"quantity"`
}

// SellPositionRequest is the payload for selling a position
type SellPositionRequest struct {
	SellDate  string          `json:"sell_date"`
	SellPrice decimal.Decimal `json:"sell_price"`
}

// AnnotateRequest is the payload for setting a closed position's note
type AnnotateRequest struct {
	Note string `json:"note"`
}

// HandleGetPositions returns the open ledger
func (h *Handler) HandleGetPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.app.GetOpenPositions(r.Context())
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonResponse(w, positions)
}

// HandleOpenPosition opens a new position
func (h *Handler) HandleOpenPosition(w http.ResponseWriter, r *http.Request) {
	var req OpenPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid JSON request", http.StatusBadRequest)
		return
	}

	req.Ticker = strings.ToUpper(strings.TrimSpace(req.Ticker))
	if err := h.ValidateSymbol(req.Ticker); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	purchaseDate, err := parseDate(req.PurchaseDate)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	position, err := h.app.OpenPosition(r.Context(), req.Ticker, req.Name, purchaseDate, req.PurchasePrice, req.Quantity)
	if err != nil {
		h.writeLifecycleError(w, err)
		return
	}

	h.jsonResponseStatus(w, position, http.StatusCreated)
}

// HandleSellPosition closes an open position
func (h *Handler) HandleSellPosition(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseIDParam(w, r)
	if !ok {
		return
	}

	var req SellPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid JSON request", http.StatusBadRequest)
		return
	}

	sellDate, err := parseDate(req.SellDate)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	closed, err := h.app.SellPosition(r.Context(), id, sellDate, req.SellPrice)
	if err != nil {
		h.writeLifecycleError(w, err)
		return
	}
	if closed == nil {
		h.jsonError(w, "position not found", http.StatusNotFound)
		return
	}

	h.jsonResponse(w, closed)
}

// HandleDeletePosition removes an open position
func (h *Handler) HandleDeletePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.app.DeletePosition(r.Context(), id); err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonResponse(w, map[string]string{"status": "deleted", "id": id.String()})
}

// HandleGetClosedPositions returns the closed ledger
func (h *Handler) HandleGetClosedPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.app.GetClosedPositions(r.Context())
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonResponse(w, positions)
}

// HandleDeleteClosedPosition removes a closed position
func (h *Handler) HandleDeleteClosedPosition(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.app.DeleteClosedPosition(r.Context(), id); err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonResponse(w, map[string]string{"status": "deleted", "id": id.String()})
}

// HandleAnnotatePosition sets the reflection note on a closed position
func (h *Handler) HandleAnnotatePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseIDParam(w, r)
	if !ok {
		return
	}

	var req AnnotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid JSON request", http.StatusBadRequest)
		return
	}

	closed, err := h.app.AnnotatePosition(r.Context(), id, req.Note)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if closed == nil {
		h.jsonError(w, "position not found", http.StatusNotFound)
		return
	}

	h.jsonResponse(w, closed)
}

// HandleGetSummary returns the latest portfolio summary snapshot
func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.app.LatestSummary(r.Context())
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonResponse(w, snapshot)
}

// HandleGetSectors returns the sector distribution of the open ledger
func (h *Handler) HandleGetSectors(w http.ResponseWriter, r *http.Request) {
	weights, err := h.app.SectorDistribution(r.Context())
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonResponse(w, weights)
}

// HandleRunScan runs the market scanner
func (h *Handler) HandleRunScan(w http.ResponseWriter, r *http.Request) {
	if h.app.Scanner() == nil {
		h.jsonError(w, "scanner not configured", http.StatusServiceUnavailable)
		return
	}

	result, err := h.app.RunScan(r.Context())
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonResponse(w, result)
}

// ScanOpenRequest is the payload for opening a position from a scan match
type ScanOpenRequest struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// HandleScanOpen opens a one-share position at the scanned price, dated today
func (h *Handler) HandleScanOpen(w http.ResponseWriter, r *http.Request) {
	var req ScanOpenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid JSON request", http.StatusBadRequest)
		return
	}

	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if err := h.ValidateSymbol(req.Symbol); err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	today := time.Now().Truncate(24 * time.Hour)
	position, err := h.app.OpenPosition(r.Context(), req.Symbol, req.Name, today, req.Price, 1)
	if err != nil {
		h.writeLifecycleError(w, err)
		return
	}

	h.jsonResponseStatus(w, position, http.StatusCreated)
}

// Helper functions

// ValidateSymbol validates a stock symbol
func (h *Handler) ValidateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("symbol is required")
	}

	if len(symbol) > 10 {
		return fmt.Errorf("symbol too long (max 10 characters)")
	}

	matched, _ := regexp.MatchString("^[A-Z0-9.-]+$", symbol)
	if !matched {
		return fmt.Errorf("invalid symbol format (alphanumeric, dots, and dashes only)")
	}

	return nil
}

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		h.jsonError(w, "missing position ID", http.StatusBadRequest)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		h.jsonError(w, "invalid position ID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	parsed, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return parsed, nil
}

func (h *Handler) writeLifecycleError(w http.ResponseWriter, err error) {
	var validationErr *portfolio.ValidationError
	if errors.As(err, &validationErr) {
		h.jsonError(w, validationErr.Error(), http.StatusBadRequest)
		return
	}
	h.jsonError(w, err.Error(), http.StatusInternalServerError)
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonResponseStatus(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
