package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusNotProcessed = "NotProcessed"
	OrderStatusProcessing   = "Processing"
	OrderStatusShipped      = "Shipped"
	OrderStatusDelivered    = "Delivered"
	OrderStatusCancelled    = "Cancelled"
)

// Order ties buyer, purchased product snapshots, and the gateway's payment
// record together. Payment is stored verbatim as returned by the gateway.
type Order struct {
	ID        int             `json:"id"`
	BuyerID   int             `json:"buyer_id"`
	Products  []OrderProduct  `json:"products"`
	Payment   json.RawMessage `json:"payment"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// OrderProduct is a snapshot of a product at purchase time.
type OrderProduct struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price"`
}

func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.Products {
		total = total.Add(p.Price)
	}
	return total
}
