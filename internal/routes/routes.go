package routes

import (
	"launchpad_backend/internal/handlers"
	"launchpad_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// Options configures routes that depend on deployment settings.
type Options struct {
	// ExportsDir is served under /exports when exports are stored locally.
	ExportsDir string
}

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, opts Options) {
	appHandlers.HealthHandler.RegisterRoutes(ginRouter)

	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ProjectHandler.RegisterRoutes(api)
		appHandlers.GenerationHandler.RegisterRoutes(api)
		appHandlers.MatchingHandler.RegisterRoutes(api)
		appHandlers.SubscriptionHandler.RegisterRoutes(api)
	}

	if opts.ExportsDir != "" {
		ginRouter.Static("/exports", opts.ExportsDir)
		logger.Info("Serving local exports", "dir", opts.ExportsDir)
	}
}
