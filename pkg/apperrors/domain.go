package apperrors

import "net/http"

/*
Предопределенные ошибки домена. Сервисы возвращают их напрямую или через
WithError, хендлеры отдают через HandleError.
*/

// --- auth ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"User with this email already exists",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired session",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

// --- project ---

var ErrProjectNotFound = New(
	CodeNotFound,
	"project",
	"Project not found",
	http.StatusNotFound,
)

var ErrProjectLimitReached = New(
	CodeLimitExceeded,
	"project",
	"Free plan project limit reached, upgrade to create more projects",
	http.StatusForbidden,
)

var ErrUnknownStep = New(
	CodeNotFound,
	"workflow",
	"Unknown workflow step",
	http.StatusNotFound,
)

// --- payment ---

var ErrPlanNotFound = New(
	CodeNotFound,
	"payment",
	"Subscription plan not found",
	http.StatusNotFound,
)

var ErrOrderNotFound = New(
	CodeNotFound,
	"payment",
	"Payment order not found",
	http.StatusNotFound,
)

var ErrInvalidSignature = New(
	CodeInvalidSignature,
	"payment",
	"Payment verification failed",
	http.StatusBadRequest,
)

var ErrOrderAlreadyProcessed = New(
	CodePaymentState,
	"payment",
	"Payment order has already been processed",
	http.StatusConflict,
)

var ErrPaymentsDisabled = New(
	CodeExternalServiceError,
	"payment",
	"Payments are not configured",
	http.StatusServiceUnavailable,
)

// --- matching ---

// ErrCorpusUnavailable is the only matcher failure; the message is fixed.
var ErrCorpusUnavailable = New(
	CodeInternalError,
	"matching",
	"Failed to find cofounder matches",
	http.StatusInternalServerError,
)

// --- export ---

var ErrUnsupportedFormat = New(
	CodeValidationFailed,
	"export",
	"Unsupported export format",
	http.StatusBadRequest,
)
