package ports

import (
	"context"

	"github.com/jcamposr/storefront-gateway/internal/storefront/core/domain/entity"
)

// CatalogService reads the product catalog from the backend.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]entity.Category, error)
	// ListProducts returns all products, or only those in the given
	// category when category is non-empty.
	ListProducts(ctx context.Context, category string) ([]entity.Product, error)
}
