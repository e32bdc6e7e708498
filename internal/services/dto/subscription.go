package dto

import (
	"time"

	"launchpad_backend/internal/config"
)

type PlansResponse struct {
	Plans    []config.Plan `json:"plans"`
	Currency string        `json:"currency"`
}

type CreateOrderRequest struct {
	PlanID string `json:"planId" validate:"required"`
}

// OrderResponse is what the checkout widget needs to open the payment form.
type OrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
	PlanID   string `json:"planId"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

type SubscriptionResponse struct {
	Active   bool       `json:"active"`
	PlanID   string     `json:"planId,omitempty"`
	PlanName string     `json:"planName,omitempty"`
	Status   string     `json:"status,omitempty"`
	EndDate  *time.Time `json:"endDate,omitempty"`
	// ProjectLimit is 0 when unlimited.
	ProjectLimit int `json:"projectLimit"`
}
