package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcamposr/storefront-gateway/internal/storefront/core/domain/entity"
	"github.com/jcamposr/storefront-gateway/internal/storefront/infra/adapters/backend"
)

func TestListCategories(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/categories", r.URL.Path)
		_, _ = io.WriteString(w, `{"categories":[
			{"id":"resume","name":"Resume Templates","description":"For job seekers","price":5.0,"image_url":"https://img/resume"},
			{"id":"ebook","name":"Learning eBooks","description":"For toddlers","price":5.0,"image_url":"https://img/ebook"}
		]}`)
	}))
	defer srv.Close()

	client := backend.New(srv.URL)
	categories, err := client.ListCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "resume", categories[0].ID)
	assert.Equal(t, "Resume Templates", categories[0].Name)
	assert.Equal(t, "5.00", categories[0].Price.StringFixed(2))
	assert.Equal(t, "https://img/ebook", categories[1].ImageURL)
}

func TestListProducts_PassesCategoryFilter(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "storybook", r.URL.Query().Get("category"))
		_, _ = io.WriteString(w, `[
			{"id":"p1","name":"The Magic Forest Story","description":"Bedtime story","category":"storybook","price":10.0,"image_url":"https://img/p1"}
		]`)
	}))
	defer srv.Close()

	client := backend.New(srv.URL)
	products, err := client.ListProducts(context.Background(), "storybook")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "storybook", products[0].Category)
}

func TestListProducts_NoFilterOmitsQueryParam(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("category"))
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	client := backend.New(srv.URL)
	products, err := client.ListProducts(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestListProducts_BackendError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := backend.New(srv.URL)
	_, err := client.ListProducts(context.Background(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestCreateOrder_SendsOnlyIDAndQuantity(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/paypal/create-order", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "items")
		assert.Contains(t, body, "customer_email")

		var items []map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(body["items"], &items))
		require.Len(t, items, 1)
		assert.Contains(t, items[0], "product_id")
		assert.Contains(t, items[0], "quantity")
		assert.NotContains(t, items[0], "price")
		assert.NotContains(t, items[0], "name")

		_, _ = io.WriteString(w, `{
			"status":"READY_FOR_PAYPAL_INTEGRATION",
			"message":"PayPal integration structure ready.",
			"order_id":"ord-1",
			"total_amount":10.0,
			"next_steps":["1. Get PayPal credentials","2. Restart backend"]
		}`)
	}))
	defer srv.Close()

	client := backend.New(srv.URL)
	result, err := client.CreateOrder(context.Background(), entity.OrderPayload{
		Items:         []entity.OrderItem{{ProductID: "p1", Quantity: 2}},
		CustomerEmail: "shopper@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusReadyForPayPal, result.Status)
	assert.Equal(t, "ord-1", result.OrderID)
	assert.Equal(t, "10.00", result.TotalAmount.StringFixed(2))
	assert.Len(t, result.NextSteps, 2)
}

func TestCreateOrder_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force a connection error

	client := backend.New(srv.URL)
	_, err := client.CreateOrder(context.Background(), entity.OrderPayload{
		Items:         []entity.OrderItem{{ProductID: "p1", Quantity: 1}},
		CustomerEmail: "shopper@example.com",
	})

	require.Error(t, err)
}

// memoryCache is an in-memory cache.Cache for tests.
type memoryCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]string)}
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value.(string)
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memoryCache) GenerateKey(operation, key string) string {
	return "test:" + operation + ":" + key
}

func TestListCategories_ReadsThroughCache(t *testing.T) {
	t.Parallel()

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = io.WriteString(w, `{"categories":[{"id":"resume","name":"Resume Templates","description":"","price":5.0,"image_url":""}]}`)
	}))
	defer srv.Close()

	client := backend.New(srv.URL, backend.WithCache(newMemoryCache(), time.Minute))

	for i := 0; i < 3; i++ {
		categories, err := client.ListCategories(context.Background())
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.True(t, categories[0].Price.Equal(decimal.NewFromInt(5)))
	}

	assert.Equal(t, 1, hits)
}
