package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product price is authoritative only from the store; client-submitted
// prices are verified against it at checkout and never trusted.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int             `json:"category_id"`
	Quantity    int             `json:"quantity"`
	Shipping    bool            `json:"shipping"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductPhoto is fetched separately so product listings never carry
// the binary payload.
type ProductPhoto struct {
	Data        []byte
	ContentType string
}
