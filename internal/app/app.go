package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"launchpad_backend/database"
	"launchpad_backend/internal/auth"
	"launchpad_backend/internal/config"
	"launchpad_backend/internal/corpus"
	"launchpad_backend/internal/email"
	"launchpad_backend/internal/generation"
	"launchpad_backend/internal/handlers"
	"launchpad_backend/internal/llm"
	"launchpad_backend/internal/logger"
	"launchpad_backend/internal/middleware"
	"launchpad_backend/internal/repositories"
	"launchpad_backend/internal/routes"
	"launchpad_backend/internal/services"
	payments "launchpad_backend/internal/services/subscription"
	"launchpad_backend/internal/storage"
	"launchpad_backend/internal/validator"
	"launchpad_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// Dependencies are the external collaborators the router is built from.
// Tests swap in their own corpus and LLM client.
type Dependencies struct {
	DB      *gorm.DB
	Corpus  corpus.Provider
	LLM     llm.Client
	Storage storage.Storage
	Email   email.Provider
}

// App владеет HTTP сервером и фоновыми воркерами.
type App struct {
	cfg      *config.Config
	db       *gorm.DB
	server   *http.Server
	services *services.ServiceContainer
}

// New подключается к БД и собирает все зависимости.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}

	store, err := storage.NewStorage(ctx, storage.ConfigFrom(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	deps := Dependencies{
		DB:      db,
		Corpus:  loadCorpus(cfg),
		LLM:     newLLMClient(ctx, cfg),
		Storage: store,
		Email:   email.NewProvider(email.ConfigFrom(cfg)),
	}

	container, router, err := build(cfg, deps)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg: cfg,
		db:  db,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		services: container,
	}, nil
}

// Run обслуживает HTTP и воркер до отмены ctx, затем корректно завершает работу.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server startup error: %w", err)
		}
		return nil
	})

	worker := workers.NewSubscriptionWorker(
		a.services.SubscriptionService,
		time.Duration(a.cfg.Payment.ExpiryCheckMinutes)*time.Minute,
	)
	g.Go(func() error {
		return worker.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	err := g.Wait()

	if sqlDB, dbErr := a.db.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Server stopped")
	return err
}

// SetupRouter строит роутер поверх готовых зависимостей. Нулевые поля
// заменяются значениями по умолчанию: встроенный корпус, LLM без ключа,
// локальное хранилище и email в лог.
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if deps.Corpus == nil {
		deps.Corpus = loadCorpus(cfg)
	}
	if deps.LLM == nil {
		deps.LLM = llm.Disabled{}
	}
	if deps.Email == nil {
		deps.Email = email.NewProvider(email.ConfigFrom(cfg))
	}
	if deps.Storage == nil {
		store, err := storage.NewStorage(context.Background(), storage.ConfigFrom(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		deps.Storage = store
	}

	_, router, err := build(cfg, deps)
	return router, err
}

func build(cfg *config.Config, deps Dependencies) (*services.ServiceContainer, *gin.Engine, error) {
	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)
	cookie := auth.SessionCookie{Name: cfg.JWT.CookieName, Secure: cfg.JWT.CookieSecure || cfg.IsProduction()}

	// 1. Инициализируем сервисы
	container, err := initializeServices(cfg, deps, tokens)
	if err != nil {
		return nil, nil, err
	}

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(container, deps, tokens, cookie)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg)

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	var opts routes.Options
	if local, ok := deps.Storage.(*storage.LocalStorage); ok {
		opts.ExportsDir = local.BasePath()
	}
	routes.RegisterRoutes(ginRouter, appHandlers, opts)

	return container, ginRouter, nil
}

func initializeServices(cfg *config.Config, deps Dependencies, tokens *auth.TokenManager) (*services.ServiceContainer, error) {
	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository(deps.DB)
	projectRepo := repositories.NewProjectRepository(deps.DB)
	subscriptionRepo := repositories.NewSubscriptionRepository(deps.DB)

	generator, err := generation.NewGenerator(deps.LLM, time.Duration(cfg.AI.TimeoutSeconds)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}

	gateway := payments.NewGateway(cfg.Payment.KeyID, cfg.Payment.KeySecret, cfg.Payment.Currency)
	if !gateway.Enabled() {
		logger.Warn("Payment keys are not set, payments are disabled")
	}

	// --- Инициализация сервисов ---
	limit := cfg.Payment.FreeProjectLimit
	authService := services.NewAuthService(userRepo, tokens, deps.Email, limit)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, userRepo, gateway, deps.Email, cfg.Payment.Plans, limit)
	projectService := services.NewProjectService(projectRepo, subscriptionService, limit)

	return &services.ServiceContainer{
		AuthService:         authService,
		ProjectService:      projectService,
		GenerationService:   services.NewGenerationService(generator, projectService),
		MatchingService:     services.NewMatchingService(deps.Corpus),
		SubscriptionService: subscriptionService,
		ExportService:       services.NewExportService(projectService, deps.Storage),
		EmailService:        deps.Email,
		Storage:             deps.Storage,
	}, nil
}

func initializeHandlers(container *services.ServiceContainer, deps Dependencies, tokens *auth.TokenManager, cookie auth.SessionCookie) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(
		validator.New(),
		middleware.RequireSession(tokens, cookie),
		middleware.OptionalSession(tokens, cookie),
	)

	var pinger handlers.Pinger
	if deps.DB != nil {
		if sqlDB, err := deps.DB.DB(); err == nil {
			pinger = sqlDB
		}
	}

	return &handlers.AppHandlers{
		HealthHandler:       handlers.NewHealthHandler(pinger),
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService, cookie),
		ProjectHandler:      handlers.NewProjectHandler(baseHandler, container.ProjectService, container.ExportService),
		GenerationHandler:   handlers.NewGenerationHandler(baseHandler, container.GenerationService),
		MatchingHandler:     handlers.NewMatchingHandler(baseHandler, container.MatchingService),
		SubscriptionHandler: handlers.NewSubscriptionHandler(baseHandler, container.SubscriptionService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	return router
}

// loadCorpus never fails: a broken dataset turns every match request into a 500.
func loadCorpus(cfg *config.Config) corpus.Provider {
	static, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		logger.Error("Failed to load cofounder corpus", "path", cfg.Corpus.Path, "error", err)
		return corpus.Unavailable{Err: err}
	}
	logger.Info("Cofounder corpus loaded", "candidates", static.Len())
	return static
}

func newLLMClient(ctx context.Context, cfg *config.Config) llm.Client {
	client, err := llm.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			logger.Warn("GEMINI_API_KEY is not set, generation will use fallbacks")
		} else {
			logger.Error("Failed to create Gemini client, generation will use fallbacks", "error", err)
		}
		return llm.Disabled{}
	}
	logger.Info("Gemini client initialized", "model", cfg.AI.Model)
	return client
}
