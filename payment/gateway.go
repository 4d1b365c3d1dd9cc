package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Transaction is the part of a gateway sale result the store relies on.
type Transaction struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
	Amount string `json:"amount,omitempty"`
}

// Result is a finalized gateway sale, stored verbatim on the order.
type Result struct {
	Success     bool        `json:"success"`
	Transaction Transaction `json:"transaction"`
}

// GatewayError wraps whatever the gateway reported. The payload is passed
// through to the caller unmodified.
type GatewayError struct {
	Payload interface{}
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway failure: %v", e.Payload)
}

// Gateway exchanges payment nonces for transactions. Implementations must
// report every failure path, including panics inside the underlying SDK,
// as a *GatewayError. Calls are one-shot: a failed sale consumes the nonce
// and the client has to resubmit with a fresh one.
type Gateway interface {
	GenerateClientToken(ctx context.Context) (string, error)
	Sale(ctx context.Context, amount decimal.Decimal, nonce string) (*Result, error)
}
