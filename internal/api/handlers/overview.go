package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/finsight/backend/internal/contracts"
	"github.com/wonny/finsight/backend/pkg/logger"
)

// OverviewService is the assembler capability this handler exposes
// (overview.Service)
type OverviewService interface {
	StockOverview(ctx context.Context, stockID string, since time.Time) (*contracts.StockOverview, error)
	SectorOverview(ctx context.Context, sectorName string, since time.Time) (*contracts.SectorOverview, error)
}

// OverviewHandler handles the stock and sector overview endpoints
// ⭐ SSOT: 오버뷰 API 핸들러는 이 구조체에서만
type OverviewHandler struct {
	service OverviewService
	logger  *logger.Logger
}

// NewOverviewHandler creates a new overview handler
func NewOverviewHandler(service OverviewService, log *logger.Logger) *OverviewHandler {
	return &OverviewHandler{
		service: service,
		logger:  log,
	}
}

// GetStockOverview returns the assembled single-stock overview
// GET /api/stocks/{code}/overview?date=2024-01-01
func (h *OverviewHandler) GetStockOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := mux.Vars(r)["code"]

	if code == "" {
		respondError(w, http.StatusBadRequest, "stock code is required")
		return
	}

	since, ok := parseSince(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	out, err := h.service.StockOverview(ctx, code, since)
	if err != nil {
		h.respondServiceError(w, err, "stock overview", code)
		return
	}

	respondJSON(w, http.StatusOK, out)
}

// GetSectorOverview returns the assembled sector overview
// GET /api/sectors/{name}/overview?date=2024-01-01
func (h *OverviewHandler) GetSectorOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]

	if name == "" {
		respondError(w, http.StatusBadRequest, "sector name is required")
		return
	}

	since, ok := parseSince(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	out, err := h.service.SectorOverview(ctx, name, since)
	if err != nil {
		h.respondServiceError(w, err, "sector overview", name)
		return
	}

	respondJSON(w, http.StatusOK, out)
}

// respondServiceError maps the service error taxonomy to HTTP statuses
func (h *OverviewHandler) respondServiceError(w http.ResponseWriter, err error, op, subject string) {
	h.logger.WithFields(map[string]interface{}{
		"op":      op,
		"subject": subject,
		"error":   err.Error(),
	}).Error("Overview request failed")

	switch {
	case errors.Is(err, contracts.ErrStockNotFound):
		respondError(w, http.StatusNotFound, contracts.ErrStockNotFound.Error())
	case errors.Is(err, contracts.ErrStoreUnavailable):
		respondError(w, http.StatusServiceUnavailable, "report store unavailable")
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
