package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"launchpad_backend/internal/config"
	"launchpad_backend/internal/email"
	"launchpad_backend/internal/logger"
	"launchpad_backend/internal/models"
	"launchpad_backend/internal/repositories"
	"launchpad_backend/internal/services/dto"
	payments "launchpad_backend/internal/services/subscription"
	"launchpad_backend/pkg/apperrors"
)

type SubscriptionService interface {
	SubscriptionChecker

	// Plan operations
	GetPlans() *dto.PlansResponse

	// Payment operations
	CreateOrder(ctx context.Context, userID, planID string) (*dto.OrderResponse, error)
	VerifyPayment(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) (*dto.SubscriptionResponse, error)

	// User subscription operations
	GetUserSubscription(ctx context.Context, userID string) (*dto.SubscriptionResponse, error)
	ProcessExpiredSubscriptions(ctx context.Context) (int64, error)
}

type SubscriptionServiceImpl struct {
	subscriptionRepo repositories.SubscriptionRepository
	userRepo         repositories.UserRepository
	gateway          *payments.Gateway
	emailProvider    email.Provider
	plans            []config.Plan
	freeProjectLimit int
	now              func() time.Time
}

func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	userRepo repositories.UserRepository,
	gateway *payments.Gateway,
	emailProvider email.Provider,
	plans []config.Plan,
	freeProjectLimit int,
) SubscriptionService {
	return &SubscriptionServiceImpl{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		gateway:          gateway,
		emailProvider:    emailProvider,
		plans:            plans,
		freeProjectLimit: freeProjectLimit,
		now:              time.Now,
	}
}

func (s *SubscriptionServiceImpl) GetPlans() *dto.PlansResponse {
	currency := ""
	if s.gateway != nil {
		currency = s.gateway.Currency
	}
	plans := make([]config.Plan, len(s.plans))
	copy(plans, s.plans)
	return &dto.PlansResponse{Plans: plans, Currency: currency}
}

func (s *SubscriptionServiceImpl) findPlan(id string) (config.Plan, bool) {
	for _, p := range s.plans {
		if p.ID == id {
			return p, true
		}
	}
	return config.Plan{}, false
}

// CreateOrder создаёт локальный заказ в статусе pending.
func (s *SubscriptionServiceImpl) CreateOrder(ctx context.Context, userID, planID string) (*dto.OrderResponse, error) {
	if !s.gateway.Enabled() {
		return nil, apperrors.ErrPaymentsDisabled
	}

	plan, ok := s.findPlan(planID)
	if !ok {
		return nil, apperrors.ErrPlanNotFound
	}

	payment := &models.PaymentTransaction{
		UserID:   userID,
		PlanID:   plan.ID,
		OrderID:  s.gateway.NewOrderID(),
		Amount:   plan.Amount,
		Currency: s.gateway.Currency,
		Status:   models.PaymentStatusPending,
	}
	if err := s.subscriptionRepo.CreatePayment(ctx, payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Payment order created", "order_id", payment.OrderID, "plan_id", plan.ID)

	return &dto.OrderResponse{
		OrderID:  payment.OrderID,
		Amount:   payment.Amount,
		Currency: payment.Currency,
		KeyID:    s.gateway.KeyID,
		PlanID:   plan.ID,
	}, nil
}

// VerifyPayment проверяет подпись провайдера и активирует или продлевает
// подписку. Неверная подпись помечает заказ как failed.
func (s *SubscriptionServiceImpl) VerifyPayment(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) (*dto.SubscriptionResponse, error) {
	if !s.gateway.Enabled() {
		return nil, apperrors.ErrPaymentsDisabled
	}

	payment, err := s.subscriptionRepo.FindPaymentByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if payment.UserID != userID {
		return nil, apperrors.ErrOrderNotFound
	}
	if payment.Status != models.PaymentStatusPending {
		return nil, apperrors.ErrOrderAlreadyProcessed
	}

	plan, ok := s.findPlan(payment.PlanID)
	if !ok {
		return nil, apperrors.ErrPlanNotFound
	}

	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		payment.Status = models.PaymentStatusFailed
		payment.PaymentID = req.PaymentID
		ok, err := s.subscriptionRepo.TransitionPayment(ctx, payment, models.PaymentStatusPending)
		if err != nil {
			logger.CtxWithError(ctx, "Failed to mark payment as failed", err, "order_id", payment.OrderID)
		} else if !ok {
			return nil, apperrors.ErrOrderAlreadyProcessed
		}
		logger.CtxWarn(ctx, "Payment signature mismatch", "order_id", payment.OrderID)
		return nil, apperrors.ErrInvalidSignature
	}

	now := s.now()
	var sub *models.UserSubscription
	err = s.subscriptionRepo.Transaction(ctx, func(repo repositories.SubscriptionRepository) error {
		payment.Status = models.PaymentStatusPaid
		payment.PaymentID = req.PaymentID
		payment.PaidAt = &now
		ok, err := repo.TransitionPayment(ctx, payment, models.PaymentStatusPending)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrOrderAlreadyProcessed
		}

		var txErr error
		sub, txErr = s.extendSubscription(ctx, repo, userID, plan, now)
		return txErr
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrOrderAlreadyProcessed) {
			return nil, apperrors.ErrOrderAlreadyProcessed
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Subscription activated", "plan_id", plan.ID, "end_date", sub.EndDate)
	s.sendReceipt(ctx, userID, plan, payment, sub)

	return s.toResponse(sub, now), nil
}

// extendSubscription продлевает текущую активную подписку или создаёт новую.
func (s *SubscriptionServiceImpl) extendSubscription(
	ctx context.Context,
	repo repositories.SubscriptionRepository,
	userID string,
	plan config.Plan,
	now time.Time,
) (*models.UserSubscription, error) {
	duration := time.Duration(plan.DurationDays) * 24 * time.Hour

	current, err := repo.FindActiveSubscription(ctx, userID, now)
	switch {
	case err == nil:
		current.PlanID = plan.ID
		current.EndDate = current.EndDate.Add(duration)
		if err := repo.SaveSubscription(ctx, current); err != nil {
			return nil, err
		}
		return current, nil
	case errors.Is(err, repositories.ErrSubscriptionNotFound):
		sub := &models.UserSubscription{
			UserID:    userID,
			PlanID:    plan.ID,
			Status:    models.SubscriptionStatusActive,
			StartDate: now,
			EndDate:   now.Add(duration),
		}
		if err := repo.SaveSubscription(ctx, sub); err != nil {
			return nil, err
		}
		return sub, nil
	default:
		return nil, err
	}
}

func (s *SubscriptionServiceImpl) GetUserSubscription(ctx context.Context, userID string) (*dto.SubscriptionResponse, error) {
	now := s.now()
	sub, err := s.subscriptionRepo.FindActiveSubscription(ctx, userID, now)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return s.toResponse(nil, now), nil
		}
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(sub, now), nil
}

func (s *SubscriptionServiceImpl) HasActiveSubscription(ctx context.Context, userID string) (bool, error) {
	_, err := s.subscriptionRepo.FindActiveSubscription(ctx, userID, s.now())
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repositories.ErrSubscriptionNotFound) {
		return false, nil
	}
	return false, err
}

// ProcessExpiredSubscriptions вызывается воркером по таймеру.
func (s *SubscriptionServiceImpl) ProcessExpiredSubscriptions(ctx context.Context) (int64, error) {
	return s.subscriptionRepo.ExpireSubscriptions(ctx, s.now())
}

func (s *SubscriptionServiceImpl) toResponse(sub *models.UserSubscription, now time.Time) *dto.SubscriptionResponse {
	if sub == nil || !sub.IsActive(now) {
		return &dto.SubscriptionResponse{Active: false, ProjectLimit: s.freeProjectLimit}
	}

	end := sub.EndDate
	resp := &dto.SubscriptionResponse{
		Active:  true,
		PlanID:  sub.PlanID,
		Status:  string(sub.Status),
		EndDate: &end,
	}
	if plan, ok := s.findPlan(sub.PlanID); ok {
		resp.PlanName = plan.Name
	}
	return resp
}

func (s *SubscriptionServiceImpl) sendReceipt(ctx context.Context, userID string, plan config.Plan, payment *models.PaymentTransaction, sub *models.UserSubscription) {
	if s.emailProvider == nil || s.userRepo == nil {
		return
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		logger.CtxWithError(ctx, "Receipt skipped, user lookup failed", err)
		return
	}

	data := email.TemplateData{
		"Name":       user.Name,
		"PlanName":   plan.Name,
		"OrderID":    payment.OrderID,
		"PaymentID":  payment.PaymentID,
		"Amount":     formatMinorUnits(payment.Amount),
		"Currency":   payment.Currency,
		"ValidUntil": sub.EndDate.Format("2006-01-02"),
	}
	to := []string{user.Email}
	log := logger.FromContext(ctx)

	go func() {
		if err := s.emailProvider.SendTemplate(to, "Payment receipt", email.TemplatePaymentReceipt, data); err != nil {
			log.Warn("Failed to send payment receipt", "error", err.Error())
		}
	}()
}

// formatMinorUnits renders 49900 as "499.00".
func formatMinorUnits(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
