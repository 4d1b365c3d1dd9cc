package payment

import (
	"context"
	"fmt"

	braintree "github.com/braintree-go/braintree-go"
	"github.com/shopspring/decimal"
)

// BraintreeGateway implements Gateway on top of the Braintree SDK.
// It is constructed once at startup and injected into the checkout flow.
type BraintreeGateway struct {
	bt *braintree.Braintree
}

func NewBraintreeGateway(environment, merchantID, publicKey, privateKey string) (*BraintreeGateway, error) {
	env, err := braintree.EnvironmentFromName(environment)
	if err != nil {
		return nil, fmt.Errorf("invalid braintree environment %q: %w", environment, err)
	}

	return &BraintreeGateway{
		bt: braintree.New(env, merchantID, publicKey, privateKey),
	}, nil
}

func (g *BraintreeGateway) GenerateClientToken(ctx context.Context) (token string, err error) {
	defer recoverGatewayError(&err)

	token, err = g.bt.ClientToken().Generate(ctx)
	if err != nil {
		return "", &GatewayError{Payload: err.Error()}
	}
	return token, nil
}

func (g *BraintreeGateway) Sale(ctx context.Context, amount decimal.Decimal, nonce string) (result *Result, err error) {
	defer recoverGatewayError(&err)

	tx, err := g.bt.Transaction().Create(ctx, &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(amount.Shift(2).IntPart(), 2),
		PaymentMethodNonce: nonce,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	})
	if err != nil {
		return nil, &GatewayError{Payload: err.Error()}
	}

	return &Result{
		Success: true,
		Transaction: Transaction{
			ID:     tx.Id,
			Status: string(tx.Status),
			Amount: amount.StringFixed(2),
		},
	}, nil
}

// recoverGatewayError folds a panic out of the SDK into the same failure
// shape as a gateway-reported error.
func recoverGatewayError(err *error) {
	if r := recover(); r != nil {
		*err = &GatewayError{Payload: fmt.Sprint(r)}
	}
}
