package ports

import (
	"context"

	"github.com/jcamposr/storefront-gateway/internal/storefront/core/domain/entity"
)

// OrderService submits order-creation requests to the backend.
type OrderService interface {
	CreateOrder(ctx context.Context, payload entity.OrderPayload) (*entity.OrderResult, error)
}
