package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
)

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	cartService *service.CartService
	log         *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		log:         log,
	}
}

// AddFoodToCart handles POST /api/food/add-food-to-cart/{foodId}
// Responds with a bare JSON boolean
func (h *CartHandler) AddFoodToCart(w http.ResponseWriter, r *http.Request) {
	id, ok := foodIDParam(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.log)
		return
	}

	added, err := h.cartService.AddToCart(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFoodNotFound) {
			WriteError(w, http.StatusNotFound, "Food not found", h.log)
			return
		}

		h.log.Error("failed to add food to cart", "foodId", id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, added, h.log)
	h.log.Info("add to cart", "foodId", id, "added", added)
}

// GetCart handles GET /api/food/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	lines, err := h.cartService.Lines(r.Context())
	if err != nil {
		h.log.Error("failed to list cart", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, lines, h.log)
}
