package entity

import "github.com/shopspring/decimal"

// StatusReadyForPayPal is the backend's signal that the order was recorded
// but the payment provider is not yet wired up. The accompanying NextSteps
// are surfaced to the customer verbatim.
const StatusReadyForPayPal = "READY_FOR_PAYPAL_INTEGRATION"

// OrderItem is one line of an order-creation request.
type OrderItem struct {
	ProductID string
	Quantity  int
}

// OrderPayload is the normalized body submitted to the order endpoint.
type OrderPayload struct {
	Items         []OrderItem
	CustomerEmail string
}

// OrderResult is what the backend answered to an order-creation request.
type OrderResult struct {
	Status      string
	Message     string
	OrderID     string
	TotalAmount decimal.Decimal
	NextSteps   []string
}
