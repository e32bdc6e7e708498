package contextkeys

// Ключи gin.Context, которые выставляет middleware сессии.
const (
	UserID    = "userID"
	UserEmail = "userEmail"
)
