package integration_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"testing"

	"launchpad_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPaymentFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)
	client, _ := helpers.RegisterUser(t, ts, "payer")

	res, body := ts.SendRequest(t, client, http.MethodGet, "/api/subscription", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"active":false`)

	res, body = ts.SendRequest(t, client, http.MethodPost, "/api/payments/order", map[string]any{"planId": "pro-monthly"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var order struct {
		OrderID string `json:"orderId"`
		Amount  int64  `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &order))
	assert.Equal(t, int64(49900), order.Amount)

	secret := ts.Config.Payment.KeySecret
	res, body = ts.SendRequest(t, client, http.MethodPost, "/api/payments/verify", map[string]any{
		"orderId":   order.OrderID,
		"paymentId": "pay_123",
		"signature": sign(secret, order.OrderID, "pay_123"),
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, client, http.MethodGet, "/api/subscription", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"active":true`)
	assert.Contains(t, body, `"planId":"pro-monthly"`)
}

func TestPaymentBadSignature(t *testing.T) {
	ts := helpers.NewTestServer(t)
	client, _ := helpers.RegisterUser(t, ts, "forger")

	res, body := ts.SendRequest(t, client, http.MethodPost, "/api/payments/order", map[string]any{"planId": "pro-yearly"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var order struct {
		OrderID string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &order))

	res, _ = ts.SendRequest(t, client, http.MethodPost, "/api/payments/verify", map[string]any{
		"orderId": order.OrderID, "paymentId": "pay_x", "signature": "deadbeef",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
