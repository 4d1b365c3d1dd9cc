package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderTotalSumsSnapshotPrices(t *testing.T) {
	order := Order{Products: []OrderProduct{
		{Slug: "slug1", Price: decimal.NewFromFloat(10.50)},
		{Slug: "slug2", Price: decimal.NewFromFloat(19.50)},
	}}

	assert.True(t, order.Total().Equal(decimal.NewFromInt(30)))
}

func TestOrderTotalEmpty(t *testing.T) {
	var order Order
	assert.True(t, order.Total().Equal(decimal.Zero))
}
