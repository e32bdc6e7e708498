package services

import (
	"context"
	"strings"

	"launchpad_backend/internal/algorithms"
	"launchpad_backend/internal/corpus"
	"launchpad_backend/internal/logger"
	"launchpad_backend/internal/models"
	"launchpad_backend/internal/services/dto"
	"launchpad_backend/pkg/apperrors"
)

type MatchingService interface {
	FindCofounders(ctx context.Context, criteria models.SearchCriteria) (*dto.CofounderMatchResponse, error)
}

type MatchingServiceImpl struct {
	corpus corpus.Provider
}

func NewMatchingService(provider corpus.Provider) MatchingService {
	return &MatchingServiceImpl{corpus: provider}
}

// FindCofounders ранжирует кандидатов корпуса. Единственная ошибка: корпус
// недоступен, частичных результатов не бывает.
func (s *MatchingServiceImpl) FindCofounders(ctx context.Context, criteria models.SearchCriteria) (*dto.CofounderMatchResponse, error) {
	criteria = NormalizeCriteria(criteria)

	candidates, err := s.corpus.Candidates(ctx)
	if err != nil {
		logger.CtxWithError(ctx, "Cofounder corpus unavailable", err)
		return nil, apperrors.ErrCorpusUnavailable.WithError(err)
	}

	match := algorithms.MatchCofounders(criteria, candidates)
	logger.CtxDebug(ctx, "Cofounder match",
		"keywords", len(criteria.ProblemKeywords),
		"category", criteria.ProblemCategory,
		"total_found", match.TotalFound,
	)

	return &dto.CofounderMatchResponse{
		Success:        true,
		Cofounders:     match.Results,
		TotalFound:     match.TotalFound,
		SearchCriteria: criteria,
	}, nil
}

// NormalizeCriteria fills neutral defaults so the echo in the response never
// carries nulls.
func NormalizeCriteria(c models.SearchCriteria) models.SearchCriteria {
	if c.ProblemKeywords == nil {
		c.ProblemKeywords = []string{}
	}
	c.ProblemCategory = strings.TrimSpace(c.ProblemCategory)
	c.SearchQuery = strings.TrimSpace(c.SearchQuery)
	c.Location = strings.TrimSpace(c.Location)
	if c.Location == "" {
		c.Location = models.DefaultSearchLocation
	}
	return c
}
