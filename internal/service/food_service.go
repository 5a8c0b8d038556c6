package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/shopspring/decimal"
)

// MaxPageSize caps the page size a client may request
const MaxPageSize = 100

var (
	ErrInvalidFilter = errors.New("invalid filter")
	ErrInvalidFood   = errors.New("invalid food")
)

// FoodService handles business logic for food listings
type FoodService struct {
	repo repository.FoodRepository
}

// NewFoodService creates a new food service
func NewFoodService(repo repository.FoodRepository) *FoodService {
	return &FoodService{
		repo: repo,
	}
}

// ListFoods returns one page of foods matching the filter
func (s *FoodService) ListFoods(ctx context.Context, filter models.FoodFilter) (*models.FoodPage, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]repository.FoodRecord, 0, len(records))
	for _, rec := range records {
		if matches(rec, filter) {
			matched = append(matched, rec)
		}
	}
	sortRecords(matched, filter.OrderBy, filter.Direction)

	page := &models.FoodPage{
		Foods:      []models.Food{},
		TotalItems: len(matched),
		TotalPages: models.TotalPages(len(matched), filter.PageSize),
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}

	start := (filter.Page - 1) * filter.PageSize
	if start >= len(matched) {
		return page, nil
	}
	end := min(start+filter.PageSize, len(matched))
	for _, rec := range matched[start:end] {
		page.Foods = append(page.Foods, rec.Food)
	}
	return page, nil
}

// GetFood returns a food by ID
func (s *FoodService) GetFood(ctx context.Context, id int64) (*models.Food, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &rec.Food, nil
}

// Categories returns all food categories
func (s *FoodService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.repo.Categories(ctx)
}

// Providers returns all product providers
func (s *FoodService) Providers(ctx context.Context) ([]models.Provider, error) {
	return s.repo.Providers(ctx)
}

// CreateFood validates and stores a new listing
func (s *FoodService) CreateFood(ctx context.Context, req models.CreateFoodRequest) (*models.Food, error) {
	p := req.Product
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidFood)
	}
	if p.ProductType != models.ProductTypeFood && p.ProductType != models.ProductTypeClothes {
		return nil, fmt.Errorf("%w: unknown product type %q", ErrInvalidFood, p.ProductType)
	}
	price, err := decimal.NewFromString(p.Price)
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("%w: invalid price %q", ErrInvalidFood, p.Price)
	}
	if p.PickupTime.IsZero() {
		return nil, fmt.Errorf("%w: pickup time is required", ErrInvalidFood)
	}

	rec, err := s.repo.Create(ctx, repository.FoodRecord{
		Food: models.Food{
			Name:        strings.TrimSpace(p.Name),
			Description: p.Description,
			Image:       p.Image,
			Price:       price.StringFixed(2),
			PickupTime:  p.PickupTime.String(),
			ProductType: p.ProductType,
			Vegetarian:  req.Vegetarian,
			Vegan:       req.Vegan,
			GlutenFree:  req.GlutenFree,
			NutFree:     req.NutFree,
			DairyFree:   req.DairyFree,
			Organic:     req.Organic,
		},
		ProviderID: p.ProductProviderID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrProviderNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFood, err)
		}
		return nil, err
	}
	return &rec.Food, nil
}

func normalizeFilter(f models.FoodFilter) (models.FoodFilter, error) {
	if f.Page == 0 {
		f.Page = 1
	}
	if f.PageSize == 0 {
		f.PageSize = models.DefaultFilter().PageSize
	}
	if f.OrderBy == "" {
		f.OrderBy = models.OrderByCreatedAt
	}
	if f.Direction == "" {
		f.Direction = models.DirectionAsc
	}

	switch {
	case f.Page < 1:
		return f, fmt.Errorf("%w: page must be at least 1", ErrInvalidFilter)
	case f.PageSize < 1 || f.PageSize > MaxPageSize:
		return f, fmt.Errorf("%w: pageSize must be between 1 and %d", ErrInvalidFilter, MaxPageSize)
	case !f.OrderBy.Valid():
		return f, fmt.Errorf("%w: unknown orderBy %q", ErrInvalidFilter, f.OrderBy)
	case !f.Direction.Valid():
		return f, fmt.Errorf("%w: unknown direction %q", ErrInvalidFilter, f.Direction)
	}
	return f, nil
}

func matches(rec repository.FoodRecord, f models.FoodFilter) bool {
	if len(f.CategoryIDs) > 0 {
		if f.CategoryIDsMatchAll {
			for _, id := range f.CategoryIDs {
				if !slices.Contains(rec.CategoryIDs, id) {
					return false
				}
			}
		} else if !slices.ContainsFunc(f.CategoryIDs, func(id int64) bool {
			return slices.Contains(rec.CategoryIDs, id)
		}) {
			return false
		}
	}

	if len(f.ProviderIDs) > 0 && !slices.Contains(f.ProviderIDs, rec.ProviderID) {
		return false
	}

	if f.ProductProviderName != "" && !strings.EqualFold(f.ProductProviderName, rec.Food.ProductProviderName) {
		return false
	}

	if f.PickupTimeFrom != nil || f.PickupTimeTo != nil {
		pickup, err := rec.Food.Pickup()
		if err != nil {
			return false
		}
		if f.PickupTimeFrom != nil && pickup.Before(f.PickupTimeFrom.Time) {
			return false
		}
		if f.PickupTimeTo != nil && pickup.After(f.PickupTimeTo.Time) {
			return false
		}
	}

	return true
}

func sortRecords(records []repository.FoodRecord, orderBy models.OrderBy, direction models.Direction) {
	compare := func(a, b repository.FoodRecord) int {
		switch orderBy {
		case models.OrderByName:
			return strings.Compare(strings.ToLower(a.Food.Name), strings.ToLower(b.Food.Name))
		case models.OrderByPrice:
			return priceOf(a).Cmp(priceOf(b))
		case models.OrderByPickupTime:
			return pickupOf(a).Compare(pickupOf(b))
		case models.OrderByCreatedAt:
			return a.CreatedAt.Compare(b.CreatedAt)
		default:
			return 0
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		c := compare(records[i], records[j])
		if c == 0 {
			c = compareID(records[i].Food.ID, records[j].Food.ID)
		}
		if direction == models.DirectionDesc {
			return c > 0
		}
		return c < 0
	})
}

func compareID(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func priceOf(rec repository.FoodRecord) decimal.Decimal {
	price, err := rec.Food.PriceDecimal()
	if err != nil {
		return decimal.Zero
	}
	return price
}

func pickupOf(rec repository.FoodRecord) time.Time {
	pickup, _ := rec.Food.Pickup()
	return pickup
}
