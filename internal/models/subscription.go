package models

import (
	"time"
)

type UserSubscription struct {
	BaseModel
	UserID    string             `gorm:"type:varchar(36);not null;index" json:"userId"`
	PlanID    string             `gorm:"type:varchar(64);not null" json:"planId"`
	Status    SubscriptionStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	StartDate time.Time          `json:"startDate"`
	EndDate   time.Time          `gorm:"index" json:"endDate"`
}

func (s *UserSubscription) IsActive(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && now.Before(s.EndDate)
}

// PaymentTransaction is a locally created order awaiting provider confirmation.
type PaymentTransaction struct {
	BaseModel
	UserID    string        `gorm:"type:varchar(36);not null;index" json:"userId"`
	PlanID    string        `gorm:"type:varchar(64);not null" json:"planId"`
	OrderID   string        `gorm:"type:varchar(64);uniqueIndex;not null" json:"orderId"`
	PaymentID string        `gorm:"type:varchar(64)" json:"paymentId,omitempty"`
	Amount    int64         `gorm:"not null" json:"amount"`
	Currency  string        `gorm:"type:varchar(8);not null" json:"currency"`
	Status    PaymentStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PaidAt    *time.Time    `json:"paidAt,omitempty"`
}
