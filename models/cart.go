package models

import "github.com/shopspring/decimal"

// CartLine is a client-submitted cart entry. The claimed price is only used
// to cross-check against the catalog; it never reaches an order as-is.
type CartLine struct {
	Slug  string          `json:"slug" binding:"required"`
	Price decimal.Decimal `json:"price"`
}
