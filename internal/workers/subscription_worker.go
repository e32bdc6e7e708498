package workers

import (
	"context"
	"time"

	"launchpad_backend/internal/logger"
)

// SubscriptionExpirer is the part of the subscription service the worker drives.
type SubscriptionExpirer interface {
	ProcessExpiredSubscriptions(ctx context.Context) (int64, error)
}

const workerName = "subscription_expiry"

type SubscriptionWorker struct {
	expirer  SubscriptionExpirer
	interval time.Duration
}

func NewSubscriptionWorker(expirer SubscriptionExpirer, interval time.Duration) *SubscriptionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SubscriptionWorker{expirer: expirer, interval: interval}
}

// Run помечает истекшие подписки сразу и затем каждые interval, пока ctx жив.
func (w *SubscriptionWorker) Run(ctx context.Context) error {
	log := logger.With("worker", workerName)
	log.Info("Subscription worker started", "interval", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Subscription worker stopped")
			return nil
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *SubscriptionWorker) tick(ctx context.Context) {
	n, err := w.expirer.ProcessExpiredSubscriptions(ctx)
	if err != nil && ctx.Err() != nil {
		// остановка сервера, не ошибка
		return
	}
	logger.WorkerLog(workerName, "expire_subscriptions", n, err)
}
