package middleware

import (
	"launchpad_backend/internal/auth"
	"launchpad_backend/internal/logger"
	"launchpad_backend/pkg/apperrors"
	"launchpad_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// RequireSession - middleware проверки сессии (cookie или Bearer)
func RequireSession(tokens *auth.TokenManager, cookie auth.SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := cookie.Token(c)
		if tokenStr == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Rejected session token", "error", err.Error())
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		setUser(c, claims)
		c.Next()
	}
}

// OptionalSession выставляет пользователя, если сессия валидна, и никогда не
// отклоняет запрос.
func OptionalSession(tokens *auth.TokenManager, cookie auth.SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := cookie.Token(c); tokenStr != "" {
			if claims, err := tokens.Parse(tokenStr); err == nil {
				setUser(c, claims)
			}
		}
		c.Next()
	}
}

func setUser(c *gin.Context, claims *auth.Claims) {
	c.Set(contextkeys.UserID, claims.UserID())
	c.Set(contextkeys.UserEmail, claims.Email)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID()))
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserID)
}
