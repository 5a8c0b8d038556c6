package service

import (
	"context"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
)

// MaxQuantityPerFood caps how many of one listing a cart may hold
const MaxQuantityPerFood = 10

// CartService handles cart business logic
type CartService struct {
	foods repository.FoodRepository
	cart  repository.CartRepository
}

// NewCartService creates a new cart service
func NewCartService(foods repository.FoodRepository, cart repository.CartRepository) *CartService {
	return &CartService{
		foods: foods,
		cart:  cart,
	}
}

// AddToCart adds one unit of a food to the cart.
// It reports false, without error, once the per-food limit is reached.
func (s *CartService) AddToCart(ctx context.Context, foodID int64) (bool, error) {
	if _, err := s.foods.GetByID(ctx, foodID); err != nil {
		return false, err
	}

	_, added, err := s.cart.Add(ctx, foodID, MaxQuantityPerFood)
	if err != nil {
		return false, err
	}
	return added, nil
}

// Lines returns the current cart contents
func (s *CartService) Lines(ctx context.Context) ([]repository.CartLine, error) {
	return s.cart.Lines(ctx)
}
