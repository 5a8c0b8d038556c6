package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
)

// FoodHandler handles food-related HTTP requests
type FoodHandler struct {
	service *service.FoodService
	logger  *slog.Logger
}

// NewFoodHandler creates a new food handler
func NewFoodHandler(service *service.FoodService, logger *slog.Logger) *FoodHandler {
	return &FoodHandler{
		service: service,
		logger:  logger,
	}
}

// GetFoods handles POST /api/food/get-foods
func (h *FoodHandler) GetFoods(w http.ResponseWriter, r *http.Request) {
	var filter models.FoodFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		h.logger.Warn("failed to decode food filter", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	page, err := h.service.ListFoods(r.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFilter) {
			h.logger.Info("rejected food filter", "error", err)
			WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}

		h.logger.Error("failed to list foods", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, page, h.logger)
}

// GetFood handles GET /api/food/get-food/{foodId}
func (h *FoodHandler) GetFood(w http.ResponseWriter, r *http.Request) {
	id, ok := foodIDParam(r)
	if !ok {
		h.logger.Warn("invalid food ID format")
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	food, err := h.service.GetFood(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFoodNotFound) {
			h.logger.Info("food not found", "foodId", id)
			WriteError(w, http.StatusNotFound, "Food not found", h.logger)
			return
		}

		h.logger.Error("failed to get food", "foodId", id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, food, h.logger)
}

// GetFoodCategories handles GET /api/food/get-food-categories
func (h *FoodHandler) GetFoodCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, categories, h.logger)
}

// CreateFood handles POST /api/food/create-food
func (h *FoodHandler) CreateFood(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode create food request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	food, err := h.service.CreateFood(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFood) {
			h.logger.Info("rejected new food", "error", err)
			WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}

		h.logger.Error("failed to create food", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, food, h.logger)
	h.logger.Info("food created successfully", "foodId", food.ID, "provider", food.ProductProviderName)
}
