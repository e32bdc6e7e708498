package services

import (
	"launchpad_backend/internal/email"
	"launchpad_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	ProjectService      ProjectService
	GenerationService   GenerationService
	MatchingService     MatchingService
	SubscriptionService SubscriptionService
	ExportService       ExportService
	EmailService        email.Provider
	Storage             storage.Storage
}
