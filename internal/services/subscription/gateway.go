package subscription

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Gateway holds the shared credentials of the card/UPI payment provider.
// Orders are created locally; the provider confirms them by returning a
// paymentId and a signature over "orderId|paymentId".
type Gateway struct {
	KeyID     string
	KeySecret string
	Currency  string
}

func NewGateway(keyID, keySecret, currency string) *Gateway {
	return &Gateway{
		KeyID:     keyID,
		KeySecret: keySecret,
		Currency:  currency,
	}
}

// Enabled reports whether credentials are configured.
func (g *Gateway) Enabled() bool {
	return g != nil && g.KeyID != "" && g.KeySecret != ""
}

// NewOrderID returns a provider-style order identifier.
func (g *Gateway) NewOrderID() string {
	return "order_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Sign returns hex(HMAC-SHA256(secret, orderID|paymentID)).
func (g *Gateway) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(g.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature проверяет подпись, пришедшую от провайдера после оплаты.
func (g *Gateway) VerifySignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	expected := g.Sign(orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}
