package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"launchpad_backend/internal/auth"
	"launchpad_backend/internal/email"
	"launchpad_backend/internal/logger"
	"launchpad_backend/internal/models"
	"launchpad_backend/internal/repositories"
	"launchpad_backend/internal/services/dto"
	"launchpad_backend/pkg/apperrors"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	tokens           *auth.TokenManager
	emailProvider    email.Provider
	freeProjectLimit int
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	emailProvider email.Provider,
	freeProjectLimit int,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		tokens:           tokens,
		emailProvider:    emailProvider,
		freeProjectLimit: freeProjectLimit,
	}
}

// Register - регистрация нового пользователя, сразу выдаёт сессию
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "User registered", "user_id", user.ID)
	s.sendWelcomeEmail(ctx, user)

	return s.issue(user)
}

// Login - аутентификация пользователя
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "Failed login attempt", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthServiceImpl) CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// сессия пережила пользователя
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *AuthServiceImpl) issue(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		User:      dto.NewUserResponse(user),
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokens.TTL()),
	}, nil
}

func (s *AuthServiceImpl) sendWelcomeEmail(ctx context.Context, user *models.User) {
	if s.emailProvider == nil {
		return
	}
	to := []string{user.Email}
	data := email.TemplateData{"Name": user.Name, "FreeProjects": s.freeProjectLimit}
	log := logger.FromContext(ctx)

	go func() {
		if err := s.emailProvider.SendTemplate(to, "Welcome to Launchpad", email.TemplateWelcome, data); err != nil {
			log.Warn("Failed to send welcome email", "error", err.Error())
		}
	}()
}
