package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

var (
	ErrFoodNotFound     = errors.New("food not found")
	ErrProviderNotFound = errors.New("provider not found")
)

// FoodRecord is a stored food listing with the attributes used for filtering
type FoodRecord struct {
	Food        models.Food
	CategoryIDs []int64
	ProviderID  int64
	CreatedAt   time.Time
}

// FoodRepository defines the interface for food data access
type FoodRepository interface {
	GetAll(ctx context.Context) ([]FoodRecord, error)
	GetByID(ctx context.Context, id int64) (*FoodRecord, error)
	Create(ctx context.Context, rec FoodRecord) (*FoodRecord, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Providers(ctx context.Context) ([]models.Provider, error)
}

// InMemoryFoodRepository implements FoodRepository with in-memory storage
type InMemoryFoodRepository struct {
	mu         sync.RWMutex
	foods      map[int64]FoodRecord
	nextID     int64
	categories []models.Category
	providers  []models.Provider
}

// NewInMemoryFoodRepository creates a new in-memory food repository with seed data
func NewInMemoryFoodRepository() *InMemoryFoodRepository {
	r := &InMemoryFoodRepository{
		foods:      make(map[int64]FoodRecord),
		nextID:     1,
		categories: seedCategories,
		providers:  seedProviders,
	}
	for _, rec := range seedFoods() {
		rec.Food.ID = r.nextID
		r.foods[rec.Food.ID] = rec
		r.nextID++
	}
	return r
}

// NewEmptyFoodRepository creates a repository with reference data but no foods
func NewEmptyFoodRepository() *InMemoryFoodRepository {
	return &InMemoryFoodRepository{
		foods:      make(map[int64]FoodRecord),
		nextID:     1,
		categories: seedCategories,
		providers:  seedProviders,
	}
}

// GetAll returns all foods ordered by id
func (r *InMemoryFoodRepository) GetAll(ctx context.Context) ([]FoodRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	foods := make([]FoodRecord, 0, len(r.foods))
	for _, rec := range r.foods {
		foods = append(foods, rec)
	}
	sort.Slice(foods, func(i, j int) bool { return foods[i].Food.ID < foods[j].Food.ID })
	return foods, nil
}

// GetByID returns a food by its ID
func (r *InMemoryFoodRepository) GetByID(ctx context.Context, id int64) (*FoodRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.foods[id]
	if !exists {
		return nil, ErrFoodNotFound
	}
	return &rec, nil
}

// Create stores a new food and assigns its ID and provider name
func (r *InMemoryFoodRepository) Create(ctx context.Context, rec FoodRecord) (*FoodRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	provider, ok := r.provider(rec.ProviderID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrProviderNotFound, rec.ProviderID)
	}

	rec.Food.ID = r.nextID
	rec.Food.ProductProviderName = provider.Name
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	r.foods[rec.Food.ID] = rec
	r.nextID++
	return &rec, nil
}

// Categories returns all food categories
func (r *InMemoryFoodRepository) Categories(ctx context.Context) ([]models.Category, error) {
	return append([]models.Category(nil), r.categories...), nil
}

// Providers returns all product providers
func (r *InMemoryFoodRepository) Providers(ctx context.Context) ([]models.Provider, error) {
	return append([]models.Provider(nil), r.providers...), nil
}

func (r *InMemoryFoodRepository) provider(id int64) (models.Provider, bool) {
	for _, p := range r.providers {
		if p.ID == id {
			return p, true
		}
	}
	return models.Provider{}, false
}
