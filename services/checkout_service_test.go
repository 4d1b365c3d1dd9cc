package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
	"storefront/payment"
)

type stubProductFinder struct {
	products []models.Product
	err      error
	calls    int
}

func (s *stubProductFinder) FindBySlugs(ctx context.Context, slugs []string) ([]models.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

type stubOrderWriter struct {
	err     error
	created []*models.Order
}

func (s *stubOrderWriter) Create(ctx context.Context, order *models.Order) error {
	if s.err != nil {
		return s.err
	}
	order.ID = len(s.created) + 1
	s.created = append(s.created, order)
	return nil
}

type stubGateway struct {
	result     *payment.Result
	err        error
	calls      int
	lastAmount decimal.Decimal
	lastNonce  string
}

func (s *stubGateway) GenerateClientToken(ctx context.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "fake-client-token", nil
}

func (s *stubGateway) Sale(ctx context.Context, amount decimal.Decimal, nonce string) (*payment.Result, error) {
	s.calls++
	s.lastAmount = amount
	s.lastNonce = nonce
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func catalogProduct(id int, slug string, price float64) models.Product {
	return models.Product{
		ID:    id,
		Name:  slug,
		Slug:  slug,
		Price: decimal.NewFromFloat(price),
	}
}

func cartLine(slug string, price float64) models.CartLine {
	return models.CartLine{Slug: slug, Price: decimal.NewFromFloat(price)}
}

func TestVerifyCartEmpty(t *testing.T) {
	svc := NewCheckoutService(&stubProductFinder{}, &stubOrderWriter{}, &stubGateway{}, nil)

	_, _, err := svc.VerifyCart(context.Background(), []models.CartLine{})

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestVerifyCartItemNotFound(t *testing.T) {
	finder := &stubProductFinder{products: []models.Product{}}
	svc := NewCheckoutService(finder, &stubOrderWriter{}, &stubGateway{}, nil)

	_, _, err := svc.VerifyCart(context.Background(), []models.CartLine{cartLine("ghost", 10)})

	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, 1, finder.calls)
}

func TestVerifyCartPartiallyResolved(t *testing.T) {
	finder := &stubProductFinder{products: []models.Product{catalogProduct(1, "slug1", 10)}}
	svc := NewCheckoutService(finder, &stubOrderWriter{}, &stubGateway{}, nil)

	_, _, err := svc.VerifyCart(context.Background(), []models.CartLine{
		cartLine("slug1", 10),
		cartLine("slug2", 20),
	})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestVerifyCartPriceMismatch(t *testing.T) {
	finder := &stubProductFinder{products: []models.Product{catalogProduct(1, "slug1", 10)}}
	svc := NewCheckoutService(finder, &stubOrderWriter{}, &stubGateway{}, nil)

	_, _, err := svc.VerifyCart(context.Background(), []models.CartLine{cartLine("slug1", 1)})

	assert.ErrorIs(t, err, ErrPriceMismatch)
}

func TestVerifyCartTotalUsesCatalogPrices(t *testing.T) {
	finder := &stubProductFinder{products: []models.Product{
		catalogProduct(1, "slug1", 10),
		catalogProduct(2, "slug2", 20),
	}}
	svc := NewCheckoutService(finder, &stubOrderWriter{}, &stubGateway{}, nil)

	total, snapshot, err := svc.VerifyCart(context.Background(), []models.CartLine{
		cartLine("slug1", 10),
		cartLine("slug2", 20),
	})

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(30)), "total should be 30, got %s", total)
	require.Len(t, snapshot, 2)
	assert.Equal(t, "slug1", snapshot[0].Slug)
	assert.Equal(t, "slug2", snapshot[1].Slug)
}

func TestVerifyCartPassesCatalogError(t *testing.T) {
	dbErr := errors.New("dbms error")
	finder := &stubProductFinder{err: dbErr}
	svc := NewCheckoutService(finder, &stubOrderWriter{}, &stubGateway{}, nil)

	_, _, err := svc.VerifyCart(context.Background(), []models.CartLine{cartLine("slug1", 10)})

	assert.ErrorIs(t, err, dbErr)
	assert.False(t, IsCartError(err))
}

func TestCheckoutSuccess(t *testing.T) {
	finder := &stubProductFinder{products: []models.Product{
		catalogProduct(1, "slug1", 10),
		catalogProduct(2, "slug2", 20),
	}}
	orders := &stubOrderWriter{}
	gateway := &stubGateway{result: &payment.Result{
		Success:     true,
		Transaction: payment.Transaction{ID: "tx1"},
	}}
	svc := NewCheckoutService(finder, orders, gateway, nil)

	buyer := &models.User{ID: 7, Email: "buyer@example.com"}
	order, err := svc.Checkout(context.Background(), buyer, "fake-nonce", []models.CartLine{
		cartLine("slug1", 10),
		cartLine("slug2", 20),
	})

	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, 1, gateway.calls)
	assert.Equal(t, "fake-nonce", gateway.lastNonce)
	assert.True(t, gateway.lastAmount.Equal(decimal.NewFromInt(30)))

	require.Len(t, orders.created, 1)
	assert.Equal(t, 7, order.BuyerID)
	assert.Equal(t, models.OrderStatusNotProcessed, order.Status)
	assert.True(t, order.Total().Equal(decimal.NewFromInt(30)))

	var record payment.Result
	require.NoError(t, json.Unmarshal(order.Payment, &record))
	assert.True(t, record.Success)
	assert.Equal(t, "tx1", record.Transaction.ID)
}

func TestCheckoutPriceMismatchNeverInvokesGateway(t *testing.T) {
	finder := &stubProductFinder{products: []models.Product{catalogProduct(1, "slug1", 10)}}
	orders := &stubOrderWriter{}
	gateway := &stubGateway{}
	svc := NewCheckoutService(finder, orders, gateway, nil)

	_, err := svc.Checkout(context.Background(), &models.User{ID: 1}, "fake-nonce",
		[]models.CartLine{cartLine("slug1", 1)})

	assert.ErrorIs(t, err, ErrPriceMismatch)
	assert.Equal(t, 0, gateway.calls)
	assert.Empty(t, orders.created)
}

func TestCheckoutEmptyCartNeverInvokesGateway(t *testing.T) {
	orders := &stubOrderWriter{}
	gateway := &stubGateway{}
	svc := NewCheckoutService(&stubProductFinder{}, orders, gateway, nil)

	_, err := svc.Checkout(context.Background(), &models.User{ID: 1}, "fake-nonce", nil)

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, gateway.calls)
	assert.Empty(t, orders.created)
}

func TestCheckoutGatewayFailureCreatesNoOrder(t *testing.T) {
	finder := &stubProductFinder{products: []models.Product{catalogProduct(1, "slug1", 10)}}
	orders := &stubOrderWriter{}
	gateway := &stubGateway{err: &payment.GatewayError{Payload: "Payment failed"}}
	svc := NewCheckoutService(finder, orders, gateway, nil)

	_, err := svc.Checkout(context.Background(), &models.User{ID: 1}, "fake-nonce",
		[]models.CartLine{cartLine("slug1", 10)})

	var gatewayErr *payment.GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, "Payment failed", gatewayErr.Payload)
	assert.Empty(t, orders.created)
}

func TestCheckoutPersistenceFailureAfterCharge(t *testing.T) {
	finder := &stubProductFinder{products: []models.Product{catalogProduct(1, "slug1", 10)}}
	persistErr := errors.New("insert failed")
	orders := &stubOrderWriter{err: persistErr}
	gateway := &stubGateway{result: &payment.Result{Success: true, Transaction: payment.Transaction{ID: "tx1"}}}
	svc := NewCheckoutService(finder, orders, gateway, nil)

	_, err := svc.Checkout(context.Background(), &models.User{ID: 1}, "fake-nonce",
		[]models.CartLine{cartLine("slug1", 10)})

	assert.ErrorIs(t, err, persistErr)
	// The charge already went through; no compensation is attempted.
	assert.Equal(t, 1, gateway.calls)
}
