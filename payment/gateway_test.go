package payment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultJSONShape(t *testing.T) {
	result := Result{Success: true, Transaction: Transaction{ID: "tx1"}}

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"transaction":{"id":"tx1"}}`, string(data))
}

func TestGatewayErrorMessage(t *testing.T) {
	err := &GatewayError{Payload: "Payment failed"}

	assert.Contains(t, err.Error(), "Payment failed")
}

func TestRecoverGatewayErrorNormalizesPanic(t *testing.T) {
	err := func() (err error) {
		defer recoverGatewayError(&err)
		panic("network error while generating token")
	}()

	var gatewayErr *GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, "network error while generating token", gatewayErr.Payload)
}

func TestRecoverGatewayErrorNoPanic(t *testing.T) {
	err := func() (err error) {
		defer recoverGatewayError(&err)
		return nil
	}()

	assert.NoError(t, err)
}
