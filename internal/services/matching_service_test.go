package services

import (
	"context"
	"errors"
	"testing"

	"launchpad_backend/internal/corpus"
	"launchpad_backend/internal/models"
	"launchpad_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchingService_FindCofounders(t *testing.T) {
	provider := corpus.NewStatic([]models.CandidateProfile{
		{ID: "a", Name: "Asha", Skills: []string{"Machine Learning"}, Project: models.CandidateProject{Title: "Tutor", Category: "EdTech", Keywords: []string{"education"}}},
		{ID: "b", Name: "Bala", Skills: []string{"Logistics"}, Project: models.CandidateProject{Title: "Fleet", Category: "Logistics", Keywords: []string{"trucks"}}},
	})
	svc := NewMatchingService(provider)

	resp, err := svc.FindCofounders(context.Background(), models.SearchCriteria{ProblemKeywords: []string{"education"}})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.TotalFound)
	require.Len(t, resp.Cofounders, 1)
	assert.Equal(t, "a", resp.Cofounders[0].ID)
	assert.Equal(t, 75, resp.Cofounders[0].MatchScore)
	assert.Equal(t, models.DefaultSearchLocation, resp.SearchCriteria.Location)
}

func TestMatchingService_CorpusUnavailable(t *testing.T) {
	svc := NewMatchingService(corpus.Unavailable{Err: errors.New("file missing")})

	resp, err := svc.FindCofounders(context.Background(), models.SearchCriteria{})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrCorpusUnavailable)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Failed to find cofounder matches", appErr.Message)
}

func TestNormalizeCriteria(t *testing.T) {
	c := NormalizeCriteria(models.SearchCriteria{ProblemCategory: "  EdTech ", Location: " "})
	assert.NotNil(t, c.ProblemKeywords)
	assert.Equal(t, "EdTech", c.ProblemCategory)
	assert.Equal(t, "India", c.Location)

	c = NormalizeCriteria(models.SearchCriteria{Location: "Pune"})
	assert.Equal(t, "Pune", c.Location)
}
