// Package foodapi is a typed client for the food and product REST endpoints.
package foodapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
	"github.com/google/uuid"
)

// ErrLoadFailed is wrapped by every error the client returns.
// Transport failures, non-2xx statuses and malformed bodies are not distinguished.
var ErrLoadFailed = errors.New("load failed")

const apiKeyHeader = "api_key"

// StatusError reports a non-2xx response
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status code: %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrLoadFailed
}

// Option configures a Client
type Option func(*Client)

// WithAPIKey sends key in the api_key header on every request
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// Client is a client for the food API
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	log        *slog.Logger
}

// NewClient creates a new food API client
func NewClient(baseURL string, httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListFoods handles POST /api/food/get-foods
func (c *Client) ListFoods(ctx context.Context, filter models.FoodFilter) (*models.FoodPage, error) {
	var page models.FoodPage
	if err := c.do(ctx, http.MethodPost, "/api/food/get-foods", filter, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetFood handles GET /api/food/get-food/{id}
func (c *Client) GetFood(ctx context.Context, id int64) (*models.Food, error) {
	var food models.Food
	if err := c.do(ctx, http.MethodGet, "/api/food/get-food/"+strconv.FormatInt(id, 10), nil, &food); err != nil {
		return nil, err
	}
	return &food, nil
}

// AddToCart handles POST /api/food/add-food-to-cart/{id}
func (c *Client) AddToCart(ctx context.Context, id int64) (bool, error) {
	var added bool
	if err := c.do(ctx, http.MethodPost, "/api/food/add-food-to-cart/"+strconv.FormatInt(id, 10), nil, &added); err != nil {
		return false, err
	}
	return added, nil
}

// ListCategories handles GET /api/food/get-food-categories
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/api/food/get-food-categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListProviders handles GET /api/product/get-providers
func (c *Client) ListProviders(ctx context.Context) ([]models.Provider, error) {
	var providers []models.Provider
	if err := c.do(ctx, http.MethodGet, "/api/product/get-providers", nil, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// CreateFood handles POST /api/food/create-food
func (c *Client) CreateFood(ctx context.Context, req models.CreateFoodRequest) (*models.Food, error) {
	var food models.Food
	if err := c.do(ctx, http.MethodPost, "/api/food/create-food", req, &food); err != nil {
		return nil, err
	}
	return &food, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(in); err != nil {
			return fmt.Errorf("%w: failed to encode request: %w", ErrLoadFailed, err)
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrLoadFailed, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	log := c.log.With("method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", "error", err)
		return fmt.Errorf("%w: failed to execute request: %w", ErrLoadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
		log.Warn("unexpected response status", "status", resp.StatusCode, "error", statusErr.Message)
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Warn("malformed response body", "error", err)
		return fmt.Errorf("%w: failed to decode response: %w", ErrLoadFailed, err)
	}

	log.Debug("request completed", "status", resp.StatusCode)
	return nil
}

// errorMessage extracts {"error": "..."} from a failed response when present
func errorMessage(r io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&payload); err != nil {
		return ""
	}
	return payload.Error
}
