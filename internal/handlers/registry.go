package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	HealthHandler       *HealthHandler
	AuthHandler         *AuthHandler
	ProjectHandler      *ProjectHandler
	GenerationHandler   *GenerationHandler
	MatchingHandler     *MatchingHandler
	SubscriptionHandler *SubscriptionHandler
}
