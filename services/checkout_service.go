package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/shopspring/decimal"

	"storefront/models"
	"storefront/payment"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrItemNotFound  = errors.New("cart item not found in catalog")
	ErrUnavailable   = errors.New("some cart items are unavailable")
	ErrPriceMismatch = errors.New("cart price does not match catalog price")
)

// IsCartError reports whether err is a cart verification failure, i.e. the
// client submitted a cart that cannot be checked out as-is.
func IsCartError(err error) bool {
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrPriceMismatch)
}

type ProductFinder interface {
	FindBySlugs(ctx context.Context, slugs []string) ([]models.Product, error)
}

type OrderWriter interface {
	Create(ctx context.Context, order *models.Order) error
}

type OrderMailer interface {
	SendOrderConfirmation(toEmail string, order *models.Order) error
}

// CheckoutService runs the verify-cart, charge, record-order sequence.
// The gateway is injected at construction; there is no package-level client.
type CheckoutService struct {
	products ProductFinder
	orders   OrderWriter
	gateway  payment.Gateway
	mailer   OrderMailer
}

func NewCheckoutService(products ProductFinder, orders OrderWriter, gateway payment.Gateway, mailer OrderMailer) *CheckoutService {
	return &CheckoutService{
		products: products,
		orders:   orders,
		gateway:  gateway,
		mailer:   mailer,
	}
}

// VerifyCart checks every cart line against the catalog and returns the
// total computed from catalog prices. It has no side effects.
func (s *CheckoutService) VerifyCart(ctx context.Context, lines []models.CartLine) (decimal.Decimal, []models.OrderProduct, error) {
	if len(lines) == 0 {
		return decimal.Zero, nil, ErrEmptyCart
	}

	slugs := make([]string, len(lines))
	for i, line := range lines {
		slugs[i] = line.Slug
	}

	products, err := s.products.FindBySlugs(ctx, slugs)
	if err != nil {
		return decimal.Zero, nil, err
	}

	if len(products) == 0 {
		return decimal.Zero, nil, ErrItemNotFound
	}
	if len(products) != len(lines) {
		return decimal.Zero, nil, ErrUnavailable
	}

	bySlug := make(map[string]models.Product, len(products))
	for _, p := range products {
		bySlug[p.Slug] = p
	}

	total := decimal.Zero
	snapshot := make([]models.OrderProduct, 0, len(lines))
	for _, line := range lines {
		p, ok := bySlug[line.Slug]
		if !ok {
			return decimal.Zero, nil, ErrItemNotFound
		}
		if !p.Price.Equal(line.Price) {
			return decimal.Zero, nil, ErrPriceMismatch
		}

		total = total.Add(p.Price)
		snapshot = append(snapshot, models.OrderProduct{
			ProductID: p.ID,
			Name:      p.Name,
			Slug:      p.Slug,
			Price:     p.Price,
		})
	}

	return total, snapshot, nil
}

// Checkout charges the verified total against the nonce and records the
// order. An order is only ever created after the gateway reports success;
// no step is retried. If persisting the order fails after a successful
// charge, the error is surfaced as-is and no compensation is attempted.
func (s *CheckoutService) Checkout(ctx context.Context, buyer *models.User, nonce string, lines []models.CartLine) (*models.Order, error) {
	total, snapshot, err := s.VerifyCart(ctx, lines)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.Sale(ctx, total, nonce)
	if err != nil {
		return nil, err
	}

	paymentRecord, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		BuyerID:  buyer.ID,
		Products: snapshot,
		Payment:  paymentRecord,
		Status:   models.OrderStatusNotProcessed,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.mailer != nil && buyer.Email != "" {
		if err := s.mailer.SendOrderConfirmation(buyer.Email, order); err != nil {
			log.Printf("Failed to send order confirmation for order %d: %v", order.ID, err)
		}
	}

	return order, nil
}
