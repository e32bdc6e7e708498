package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"launchpad_backend/internal/logger"
	"launchpad_backend/internal/models"
	"launchpad_backend/internal/services"
	"launchpad_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// maxMatchBody limits how much of the request body is read.
const maxMatchBody = 64 << 10

type MatchingHandler struct {
	*BaseHandler
	matchingService services.MatchingService
}

func NewMatchingHandler(base *BaseHandler, matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		BaseHandler:     base,
		matchingService: matchingService,
	}
}

func (h *MatchingHandler) RegisterRoutes(r *gin.RouterGroup) {
	// без авторизации
	r.POST("/cofounder-matches", h.FindCofounders)
}

// FindCofounders никогда не отвечает 400: кривое тело превращается в
// нейтральные критерии. Единственная ошибка - 500 с {error}.
func (h *MatchingHandler) FindCofounders(c *gin.Context) {
	ctx := c.Request.Context()
	criteria := decodeCriteria(c.Request.Body)

	resp, err := h.matchingService.FindCofounders(ctx, criteria)
	if err != nil {
		logger.CtxWithError(ctx, "Cofounder matching failed", err)
		msg := apperrors.ErrCorpusUnavailable.Message
		if appErr, ok := apperrors.AsAppError(err); ok {
			msg = appErr.Message
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// decodeCriteria reads each field on its own so that one malformed field
// does not discard the others.
func decodeCriteria(body io.Reader) models.SearchCriteria {
	var criteria models.SearchCriteria
	if body == nil {
		return criteria
	}

	raw, err := io.ReadAll(io.LimitReader(body, maxMatchBody))
	if err != nil {
		return criteria
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return criteria
	}

	criteria.ProblemKeywords = stringList(fields["problemKeywords"])
	criteria.ProblemCategory = stringField(fields["problemCategory"])
	criteria.SearchQuery = stringField(fields["searchQuery"])
	criteria.Location = stringField(fields["location"])
	return criteria
}

func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// stringList keeps the string elements of a JSON array. A bare string is
// treated as a single keyword.
func stringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		if s := stringField(raw); s != "" {
			return []string{s}
		}
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
