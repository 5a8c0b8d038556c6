package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.FoodService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.FoodService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// GetProviders handles GET /api/product/get-providers
func (h *ProductHandler) GetProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.service.Providers(r.Context())
	if err != nil {
		h.logger.Error("failed to list providers", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, providers, h.logger)
}
