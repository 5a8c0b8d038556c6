package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the food API routes
func NewRouter(foods *service.FoodService, cart *service.CartService, auth config.AuthConfig, log *slog.Logger) http.Handler {
	healthHandler := NewHealthHandler(log)
	foodHandler := NewFoodHandler(foods, log)
	productHandler := NewProductHandler(foods, log)
	cartHandler := NewCartHandler(cart, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id", middleware.APIKeyHeader},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Route("/food", func(r chi.Router) {
			r.Post("/get-foods", foodHandler.GetFoods)
			r.Get("/get-food/{foodId}", foodHandler.GetFood)
			r.Get("/get-food-categories", foodHandler.GetFoodCategories)
			r.Post("/add-food-to-cart/{foodId}", cartHandler.AddFoodToCart)
			r.Get("/cart", cartHandler.GetCart)
			r.With(middleware.APIKeyAuth(auth, log)).Post("/create-food", foodHandler.CreateFood)
		})

		r.Get("/product/get-providers", productHandler.GetProviders)
	})

	return r
}
