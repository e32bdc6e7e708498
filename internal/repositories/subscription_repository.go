package repositories

import (
	"context"
	"errors"
	"time"

	"launchpad_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrPaymentNotFound      = errors.New("payment transaction not found")
)

type SubscriptionRepository interface {
	// UserSubscription operations
	FindActiveSubscription(ctx context.Context, userID string, now time.Time) (*models.UserSubscription, error)
	SaveSubscription(ctx context.Context, sub *models.UserSubscription) error
	ExpireSubscriptions(ctx context.Context, now time.Time) (int64, error)

	// PaymentTransaction operations
	CreatePayment(ctx context.Context, payment *models.PaymentTransaction) error
	FindPaymentByOrderID(ctx context.Context, orderID string) (*models.PaymentTransaction, error)
	// TransitionPayment writes PaymentID, Status and PaidAt only while the stored
	// status still equals from. ok is false when another request got there first.
	TransitionPayment(ctx context.Context, payment *models.PaymentTransaction, from models.PaymentStatus) (ok bool, err error)

	// Transaction runs fn with repositories bound to one database transaction.
	Transaction(ctx context.Context, fn func(repo SubscriptionRepository) error) error
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) FindActiveSubscription(ctx context.Context, userID string, now time.Time) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND end_date > ?", userID, models.SubscriptionStatusActive, now).
		Order("end_date DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) SaveSubscription(ctx context.Context, sub *models.UserSubscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// ExpireSubscriptions переводит просроченные активные подписки в expired.
func (r *SubscriptionRepositoryImpl) ExpireSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.UserSubscription{}).
		Where("status = ? AND end_date <= ?", models.SubscriptionStatusActive, now).
		Update("status", models.SubscriptionStatusExpired)
	return result.RowsAffected, result.Error
}

func (r *SubscriptionRepositoryImpl) CreatePayment(ctx context.Context, payment *models.PaymentTransaction) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *SubscriptionRepositoryImpl) FindPaymentByOrderID(ctx context.Context, orderID string) (*models.PaymentTransaction, error) {
	var payment models.PaymentTransaction
	err := r.db.WithContext(ctx).First(&payment, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *SubscriptionRepositoryImpl) TransitionPayment(ctx context.Context, payment *models.PaymentTransaction, from models.PaymentStatus) (bool, error) {
	// условный UPDATE: гонку двух verify выигрывает только один
	result := r.db.WithContext(ctx).Model(&models.PaymentTransaction{}).
		Where("order_id = ? AND status = ?", payment.OrderID, from).
		Updates(map[string]any{
			"payment_id": payment.PaymentID,
			"status":     payment.Status,
			"paid_at":    payment.PaidAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *SubscriptionRepositoryImpl) Transaction(ctx context.Context, fn func(repo SubscriptionRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SubscriptionRepositoryImpl{db: tx})
	})
}
