package handlers

import (
	"net/http"

	"github.com/wonny/finsight/backend/internal/market"
	"github.com/wonny/finsight/backend/pkg/logger"
)

// MarketHandler serves the market indicator board
type MarketHandler struct {
	service *market.Service
	logger  *logger.Logger
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(service *market.Service, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		service: service,
		logger:  log,
	}
}

// GetIndicators returns the cached indicator snapshot
// GET /api/market/indicators
func (h *MarketHandler) GetIndicators(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Indicators(r.Context())
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Error("Failed to get market indicators")
		respondError(w, http.StatusBadGateway, "indicator sources unavailable")
		return
	}

	respondJSON(w, http.StatusOK, snap)
}
