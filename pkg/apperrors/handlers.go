package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный ответ об ошибке.
// Поле error всегда строка, клиенты показывают его как есть.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    ErrorCode   `json:"code"`
	Domain  string      `json:"domain,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// HandleError пишет ошибку в ответ. Всё, что не AppError, становится 500
// без деталей.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.Default().Error("server error", "code", appErr.Code, "cause", appErr.Unwrap())
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, NewErrorResponse(appErr))
}

func NewErrorResponse(appErr *AppError) ErrorResponse {
	return ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Domain:  appErr.Domain,
		Details: appErr.Details,
	}
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
