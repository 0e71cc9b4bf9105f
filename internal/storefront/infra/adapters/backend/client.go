// Package backend is the HTTP adapter for the storefront's upstream API.
// It implements the catalog and order ports over the backend's JSON
// endpoints, instrumented with OpenTelemetry.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcamposr/storefront-gateway/internal/pkg/cache"
	"github.com/jcamposr/storefront-gateway/internal/storefront/core/domain/entity"
	"github.com/jcamposr/storefront-gateway/internal/storefront/core/ports"
)

// Compile-time port checks.
var (
	_ ports.CatalogService = (*Client)(nil)
	_ ports.OrderService   = (*Client)(nil)
)

// Client talks to the backend API. One base URL prefixes every request.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// cache is optional; nil means every catalog read hits the backend.
	cache    cache.Cache
	cacheTTL time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithCache enables read-through caching of catalog responses.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

// WithHTTPClient overrides the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = hc
	}
}

// New builds a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire formats, per the backend API.

type categoryDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
}

type categoriesEnvelope struct {
	Categories []categoryDTO `json:"categories"`
}

type productDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
}

type orderRequest struct {
	Items         []orderItemDTO `json:"items"`
	CustomerEmail string         `json:"customer_email"`
}

type orderItemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type orderResponse struct {
	Status      string          `json:"status"`
	Message     string          `json:"message"`
	OrderID     string          `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	NextSteps   []string        `json:"next_steps"`
}

// ListCategories fetches the category list from GET /api/categories.
func (c *Client) ListCategories(ctx context.Context) ([]entity.Category, error) {
	body, err := c.cachedGet(ctx, "/api/categories", "categories", "all")
	if err != nil {
		return nil, err
	}

	var envelope categoriesEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("backend: decode categories: %w", err)
	}

	categories := make([]entity.Category, 0, len(envelope.Categories))
	for _, dto := range envelope.Categories {
		categories = append(categories, entity.Category{
			ID:          dto.ID,
			Name:        dto.Name,
			Description: dto.Description,
			Price:       dto.Price,
			ImageURL:    dto.ImageURL,
		})
	}
	return categories, nil
}

// ListProducts fetches GET /api/products, filtered by category when
// category is non-empty.
func (c *Client) ListProducts(ctx context.Context, category string) ([]entity.Product, error) {
	path := "/api/products"
	cacheKey := "all"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
		cacheKey = category
	}

	body, err := c.cachedGet(ctx, path, "products", cacheKey)
	if err != nil {
		return nil, err
	}

	var dtos []productDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("backend: decode products: %w", err)
	}

	products := make([]entity.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, entity.Product{
			ID:          dto.ID,
			Name:        dto.Name,
			Description: dto.Description,
			Category:    dto.Category,
			Price:       dto.Price,
			ImageURL:    dto.ImageURL,
		})
	}
	return products, nil
}

// CreateOrder submits the payload to POST /api/paypal/create-order.
func (c *Client) CreateOrder(ctx context.Context, payload entity.OrderPayload) (*entity.OrderResult, error) {
	req := orderRequest{
		Items:         make([]orderItemDTO, 0, len(payload.Items)),
		CustomerEmail: payload.CustomerEmail,
	}
	for _, item := range payload.Items {
		req.Items = append(req.Items, orderItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	encoded, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("backend: encode order: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/paypal/create-order", bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("backend: build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("backend: create order: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("backend: create order: unexpected status %d", res.StatusCode)
	}

	var dto orderResponse
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("backend: decode order response: %w", err)
	}

	return &entity.OrderResult{
		Status:      dto.Status,
		Message:     dto.Message,
		OrderID:     dto.OrderID,
		TotalAmount: dto.TotalAmount,
		NextSteps:   dto.NextSteps,
	}, nil
}

// cachedGet performs a GET, reading through the cache when one is
// configured. Cache failures are ignored: the backend stays the source of
// truth and a cold cache just means an extra round trip.
func (c *Client) cachedGet(ctx context.Context, path, operation, key string) ([]byte, error) {
	var namespacedKey string
	if c.cache != nil {
		namespacedKey = c.cache.GenerateKey(operation, key)
		if cached, err := c.cache.Get(ctx, namespacedKey); err == nil && cached != "" {
			return []byte(cached), nil
		}
	}

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, namespacedKey, string(body), c.cacheTTL)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("backend: build request for %s: %w", path, err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: get %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend: get %s: unexpected status %d", path, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("backend: read %s response: %w", path, err)
	}
	return body, nil
}
