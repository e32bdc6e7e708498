package services

import (
	"context"
	"testing"
	"time"

	"launchpad_backend/internal/auth"
	"launchpad_backend/internal/email"
	"launchpad_backend/internal/services/dto"
	"launchpad_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (AuthService, *fakeEmail, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	mail := &fakeEmail{}
	return NewAuthService(newFakeUserRepo(), tokens, mail, 3), mail, tokens
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, mail, tokens := newAuthService(t)

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Name: " Asha ", Email: "Asha@Example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", reg.User.Email)
	assert.Equal(t, "Asha", reg.User.Name)

	claims, err := tokens.Parse(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID())

	assert.Eventually(t, func() bool { return len(mail.Sent()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, email.TemplateWelcome, mail.Sent()[0].Template)

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	me, err := svc.CurrentUser(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", me.Name)
}

func TestAuthService_RegisterErrors(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(ctx, &dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "short"})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "longenough"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Name: "B", Email: "A@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(ctx, &dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "longenough"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "a@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.CurrentUser(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
