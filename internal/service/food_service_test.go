package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
)

func TestFoodService_ListFoods_Paging(t *testing.T) {
	svc := NewFoodService(repository.NewInMemoryFoodRepository())
	ctx := context.Background()

	filter := models.DefaultFilter()
	filter.PageSize = 15

	wantCounts := []int{15, 15, 10, 0}
	seen := make(map[int64]bool)

	for i, want := range wantCounts {
		filter.Page = i + 1
		page, err := svc.ListFoods(ctx, filter)
		if err != nil {
			t.Fatalf("ListFoods(page %d) unexpected error = %v", filter.Page, err)
		}

		if len(page.Foods) != want {
			t.Errorf("page %d: expected %d foods, got %d", filter.Page, want, len(page.Foods))
		}
		if page.TotalItems != 40 || page.TotalPages != 3 {
			t.Errorf("page %d: expected 40 items in 3 pages, got %d in %d", filter.Page, page.TotalItems, page.TotalPages)
		}
		for _, f := range page.Foods {
			if seen[f.ID] {
				t.Errorf("food %d returned on more than one page", f.ID)
			}
			seen[f.ID] = true
		}
	}
}

func TestFoodService_ListFoods_Filters(t *testing.T) {
	svc := NewFoodService(repository.NewInMemoryFoodRepository())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.FoodFilter)
		check  func(*testing.T, []models.Food)
		want   int
	}{
		{
			name:   "category any",
			mutate: func(f *models.FoodFilter) { f.CategoryIDs = []int64{3} },
			want:   6,
		},
		{
			name: "categories match any",
			mutate: func(f *models.FoodFilter) {
				f.CategoryIDs = []int64{2, 5}
			},
			want: 16,
		},
		{
			name: "categories match all",
			mutate: func(f *models.FoodFilter) {
				f.CategoryIDs = []int64{2, 7}
				f.CategoryIDsMatchAll = true
			},
			want: 4,
		},
		{
			name:   "provider ids",
			mutate: func(f *models.FoodFilter) { f.ProviderIDs = []int64{2} },
			check: func(t *testing.T, foods []models.Food) {
				for _, f := range foods {
					if f.ProductProviderName != "Green Bowl" {
						t.Errorf("expected only Green Bowl foods, got %s", f.ProductProviderName)
					}
				}
			},
			want: 12,
		},
		{
			name:   "provider name",
			mutate: func(f *models.FoodFilter) { f.ProductProviderName = "mcdonalds" },
			want:   14,
		},
		{
			name: "pickup range",
			mutate: func(f *models.FoodFilter) {
				f.PickupTimeFrom = models.NewLocalTime(time.Date(2024, 5, 1, 17, 0, 0, 0, time.UTC))
				f.PickupTimeTo = models.NewLocalTime(time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC))
			},
			check: func(t *testing.T, foods []models.Food) {
				for _, f := range foods {
					if f.PickupTime != "2024-05-01T18:00:00" {
						t.Errorf("unexpected pickup time %s", f.PickupTime)
					}
				}
			},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := models.DefaultFilter()
			tt.mutate(&filter)

			page, err := svc.ListFoods(ctx, filter)
			if err != nil {
				t.Fatalf("ListFoods() unexpected error = %v", err)
			}
			if page.TotalItems != tt.want {
				t.Errorf("expected %d foods, got %d", tt.want, page.TotalItems)
			}
			if tt.check != nil {
				tt.check(t, page.Foods)
			}
		})
	}
}

func TestFoodService_ListFoods_Sorting(t *testing.T) {
	svc := NewFoodService(repository.NewInMemoryFoodRepository())
	ctx := context.Background()

	filter := models.DefaultFilter()
	filter.OrderBy = models.OrderByPrice
	filter.Direction = models.DirectionDesc

	page, err := svc.ListFoods(ctx, filter)
	if err != nil {
		t.Fatalf("ListFoods() unexpected error = %v", err)
	}
	if page.Foods[0].Price != "16.99" {
		t.Errorf("expected most expensive first, got %s", page.Foods[0].Price)
	}
	if last := page.Foods[len(page.Foods)-1]; last.Price != "3.99" {
		t.Errorf("expected cheapest last, got %s", last.Price)
	}

	filter.OrderBy = models.OrderByName
	filter.Direction = models.DirectionAsc
	page, err = svc.ListFoods(ctx, filter)
	if err != nil {
		t.Fatalf("ListFoods() unexpected error = %v", err)
	}
	if page.Foods[0].Name != "Apple Pie" {
		t.Errorf("expected 'Apple Pie' first, got %s", page.Foods[0].Name)
	}
}

func TestFoodService_ListFoods_InvalidFilter(t *testing.T) {
	svc := NewFoodService(repository.NewInMemoryFoodRepository())

	tests := []struct {
		name   string
		filter models.FoodFilter
	}{
		{"negative page", models.FoodFilter{Page: -1}},
		{"page size too large", models.FoodFilter{PageSize: 1000}},
		{"unknown order", models.FoodFilter{OrderBy: "RATING"}},
		{"unknown direction", models.FoodFilter{Direction: "UP"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ListFoods(context.Background(), tt.filter)
			if !errors.Is(err, ErrInvalidFilter) {
				t.Errorf("expected ErrInvalidFilter, got %v", err)
			}
		})
	}
}

func TestFoodService_CreateFood(t *testing.T) {
	svc := NewFoodService(repository.NewEmptyFoodRepository())
	ctx := context.Background()

	valid := models.CreateFoodRequest{
		Product: models.ProductFields{
			ProductType:       models.ProductTypeFood,
			ProductProviderID: 1,
			Name:              "Apple Turnover",
			Price:             "3.5",
			PickupTime:        *models.NewLocalTime(time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)),
		},
		Vegan: true,
	}

	food, err := svc.CreateFood(ctx, valid)
	if err != nil {
		t.Fatalf("CreateFood() unexpected error = %v", err)
	}
	if food.ID != 1 || food.Price != "3.50" || !food.Vegan {
		t.Errorf("unexpected created food %+v", food)
	}
	if food.PickupTime != "2024-05-03T09:00:00" {
		t.Errorf("unexpected pickup time %s", food.PickupTime)
	}

	invalid := []func(*models.CreateFoodRequest){
		func(r *models.CreateFoodRequest) { r.Product.Name = "" },
		func(r *models.CreateFoodRequest) { r.Product.Price = "free" },
		func(r *models.CreateFoodRequest) { r.Product.ProductType = "TOYS" },
		func(r *models.CreateFoodRequest) { r.Product.ProductProviderID = 99 },
		func(r *models.CreateFoodRequest) { r.Product.PickupTime = models.LocalTime{} },
	}
	for i, mutate := range invalid {
		req := valid
		mutate(&req)
		if _, err := svc.CreateFood(ctx, req); !errors.Is(err, ErrInvalidFood) {
			t.Errorf("case %d: expected ErrInvalidFood, got %v", i, err)
		}
	}
}

func TestCartService_AddToCart(t *testing.T) {
	foods := repository.NewInMemoryFoodRepository()
	svc := NewCartService(foods, repository.NewInMemoryCartRepository())
	ctx := context.Background()

	for i := 0; i < MaxQuantityPerFood; i++ {
		added, err := svc.AddToCart(ctx, 1)
		if err != nil || !added {
			t.Fatalf("AddToCart() #%d = %v, %v", i+1, added, err)
		}
	}

	added, err := svc.AddToCart(ctx, 1)
	if err != nil {
		t.Fatalf("AddToCart() unexpected error = %v", err)
	}
	if added {
		t.Error("expected add beyond the limit to be rejected")
	}

	if _, err := svc.AddToCart(ctx, 999); !errors.Is(err, repository.ErrFoodNotFound) {
		t.Errorf("expected ErrFoodNotFound, got %v", err)
	}

	lines, _ := svc.Lines(ctx)
	if len(lines) != 1 || lines[0].Quantity != MaxQuantityPerFood {
		t.Errorf("unexpected cart lines %+v", lines)
	}
}

func TestCartService_ConcurrentAddsRespectLimit(t *testing.T) {
	ctx := context.Background()
	foods := repository.NewInMemoryFoodRepository()
	svc := NewCartService(foods, repository.NewInMemoryCartRepository())

	var wg sync.WaitGroup
	for i := 0; i < 3*MaxQuantityPerFood; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.AddToCart(ctx, 2)
		}()
	}
	wg.Wait()

	lines, err := svc.Lines(ctx)
	if err != nil {
		t.Fatalf("Lines() unexpected error = %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != MaxQuantityPerFood {
		t.Errorf("expected quantity %d, got %+v", MaxQuantityPerFood, lines)
	}
}
