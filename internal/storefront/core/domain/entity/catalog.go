package entity

import "github.com/shopspring/decimal"

// Product is a catalog item as served by the backend.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	ImageURL    string
}

// Category groups products in the catalog.
type Category struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
}
