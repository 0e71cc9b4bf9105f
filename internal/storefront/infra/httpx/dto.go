package httpx

import "github.com/shopspring/decimal"

// AddItemRequest is the product record the view rendered; name and price
// are snapshotted into the cart as-is.
type AddItemRequest struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	CustomerEmail string `json:"customer_email"`
}

type CartItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total string             `json:"total"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

type CheckoutResponse struct {
	Status    string   `json:"status"`
	OrderID   string   `json:"order_id,omitempty"`
	Message   string   `json:"message,omitempty"`
	Total     string   `json:"total,omitempty"`
	NextSteps []string `json:"next_steps,omitempty"`
}

type NoticeResponse struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

type NoticesResponse struct {
	Notices []NoticeResponse `json:"notices"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
