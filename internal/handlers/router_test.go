package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// Browsing and the cart need no key; only create-food is gated.
func TestRouter_OnlyCreateFoodNeedsAPIKey(t *testing.T) {
	r := newTestRouter(t)

	filter, _ := json.Marshal(models.DefaultFilter())
	open := []struct {
		method string
		path   string
		body   []byte
	}{
		{http.MethodGet, "/health", nil},
		{http.MethodPost, "/api/food/get-foods", filter},
		{http.MethodGet, "/api/food/get-food/1", nil},
		{http.MethodGet, "/api/food/get-food-categories", nil},
		{http.MethodGet, "/api/product/get-providers", nil},
		{http.MethodPost, "/api/food/add-food-to-cart/1", nil},
		{http.MethodGet, "/api/food/cart", nil},
	}

	for _, tt := range open {
		req := httptest.NewRequest(tt.method, tt.path, bytes.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s %s without api_key: status = %d, want 200", tt.method, tt.path, w.Code)
		}
	}

	// the client surfaces the JSON error message on a rejected create
	w := postJSON(t, r, "/api/food/create-food", models.CreateFoodRequest{}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("create-food without api_key: status = %d, want 401", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body["error"] != "API key required" {
		t.Errorf("error = %q, want %q", body["error"], "API key required")
	}
}
