package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcamposr/storefront-gateway/internal/storefront/core/domain/entity"
)

func product(id, name string, price float64) entity.Product {
	return entity.Product{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromFloat(price),
	}
}

func TestAdd_NewProduct(t *testing.T) {
	t.Parallel()

	cart := entity.NewCart()
	cart.Add(product("p1", "Professional Resume Template", 5))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, "Professional Resume Template", items[0].Name)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "5.00", items[0].Price.StringFixed(2))
}

func TestAdd_SameProductTwice_IncrementsQuantity(t *testing.T) {
	t.Parallel()

	cart := entity.NewCart()
	cart.Add(product("p1", "eBook", 5))
	cart.Add(product("p1", "eBook", 5))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAdd_SnapshotsPriceAtAddTime(t *testing.T) {
	t.Parallel()

	cart := entity.NewCart()
	cart.Add(product("p1", "eBook", 5))

	// A later add with a different price must not reprice the line.
	cart.Add(product("p1", "eBook", 99))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "5.00", items[0].Price.StringFixed(2))
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	cart := entity.NewCart()
	cart.Add(product("p3", "Storybook", 10))
	cart.Add(product("p1", "Resume", 5))
	cart.Add(product("p2", "eBook", 5))
	cart.Add(product("p1", "Resume", 5))

	items := cart.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "p3", items[0].ProductID)
	assert.Equal(t, "p1", items[1].ProductID)
	assert.Equal(t, "p2", items[2].ProductID)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	cart := entity.NewCart()
	cart.Add(product("p1", "Resume", 5))
	cart.Add(product("p2", "eBook", 5))

	cart.Remove("p1")

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)
}

func TestRemove_UnknownProduct_NoOp(t *testing.T) {
	t.Parallel()

	cart := entity.NewCart()
	cart.Add(product("p1", "Resume", 5))

	cart.Remove("nope")

	assert.Len(t, cart.Items(), 1)
}

func TestSetQuantity(t *testing.T) {
	t.Parallel()

	cart := entity.NewCart()
	cart.Add(product("p1", "Resume", 5))

	cart.SetQuantity("p1", 7)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestSetQuantity_ZeroOrNegative_RemovesLine(t *testing.T) {
	t.Parallel()

	for _, quantity := range []int{0, -1, -100} {
		cart := entity.NewCart()
		cart.Add(product("p1", "Resume", 5))

		cart.SetQuantity("p1", quantity)

		assert.True(t, cart.IsEmpty(), "quantity %d should empty the cart", quantity)
	}
}

func TestSetQuantity_UnknownProduct_NoOp(t *testing.T) {
	t.Parallel()

	cart := entity.NewCart()
	cart.Add(product("p1", "Resume", 5))

	cart.SetQuantity("nope", 3)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestTotalPrice(t *testing.T) {
	t.Parallel()

	cart := entity.NewCart()
	assert.Equal(t, "0.00", cart.TotalPrice())

	cart.Add(product("p1", "Resume", 9.99))
	cart.Add(product("p1", "Resume", 9.99))
	cart.Add(product("p2", "eBook", 5))

	assert.Equal(t, "24.98", cart.TotalPrice())
}

func TestTotalPrice_NoFloatDrift(t *testing.T) {
	t.Parallel()

	cart := entity.NewCart()
	cart.Add(product("p1", "A", 0.1))
	cart.Add(product("p2", "B", 0.2))

	assert.Equal(t, "0.30", cart.TotalPrice())
}

func TestOrderPayload(t *testing.T) {
	t.Parallel()

	cart := entity.NewCart()
	cart.Add(product("p1", "Resume", 9.99))
	cart.Add(product("p1", "Resume", 9.99))
	cart.Add(product("p2", "eBook", 5))

	payload := cart.OrderPayload("shopper@example.com")

	assert.Equal(t, "shopper@example.com", payload.CustomerEmail)
	require.Len(t, payload.Items, 2)
	assert.Equal(t, entity.OrderItem{ProductID: "p1", Quantity: 2}, payload.Items[0])
	assert.Equal(t, entity.OrderItem{ProductID: "p2", Quantity: 1}, payload.Items[1])
}

func TestItems_ReturnsCopy(t *testing.T) {
	t.Parallel()

	cart := entity.NewCart()
	cart.Add(product("p1", "Resume", 5))

	items := cart.Items()
	items[0].Quantity = 42

	assert.Equal(t, 1, cart.Items()[0].Quantity)
}
