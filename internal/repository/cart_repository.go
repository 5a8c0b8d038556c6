package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// CartLine is one food in the cart with its quantity
type CartLine struct {
	ID       string `json:"id"`
	FoodID   int64  `json:"foodId"`
	Quantity int    `json:"quantity"`
}

// CartRepository defines the interface for cart storage
type CartRepository interface {
	Add(ctx context.Context, foodID int64, limit int) (CartLine, bool, error)
	Lines(ctx context.Context) ([]CartLine, error)
}

// InMemoryCartRepository keeps a single shared cart in memory
type InMemoryCartRepository struct {
	mu    sync.Mutex
	lines map[int64]CartLine
}

// NewInMemoryCartRepository creates an empty cart
func NewInMemoryCartRepository() *InMemoryCartRepository {
	return &InMemoryCartRepository{
		lines: make(map[int64]CartLine),
	}
}

// Add increments the quantity of foodID, creating the line on first add.
// When the line already holds limit units nothing changes and Add reports false;
// a non-positive limit means no cap.
func (r *InMemoryCartRepository) Add(ctx context.Context, foodID int64, limit int) (CartLine, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line, exists := r.lines[foodID]
	if !exists {
		line = CartLine{ID: uuid.New().String(), FoodID: foodID}
	}
	if limit > 0 && line.Quantity >= limit {
		return line, false, nil
	}
	line.Quantity++
	r.lines[foodID] = line
	return line, true, nil
}

// Lines returns the cart lines ordered by food id
func (r *InMemoryCartRepository) Lines(ctx context.Context) ([]CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := make([]CartLine, 0, len(r.lines))
	for _, line := range r.lines {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].FoodID < lines[j].FoodID })
	return lines, nil
}
