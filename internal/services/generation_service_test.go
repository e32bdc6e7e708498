package services

import (
	"context"
	"testing"
	"time"

	"launchpad_backend/internal/generation"
	"launchpad_backend/internal/llm"
	"launchpad_backend/internal/services/dto"
	"launchpad_backend/internal/workflow"
	"launchpad_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerationService(t *testing.T) (GenerationService, ProjectService) {
	t.Helper()
	gen, err := generation.NewGenerator(llm.Disabled{}, time.Second)
	require.NoError(t, err)
	projects := NewProjectService(newFakeProjectRepo(), staticChecker(false), 3)
	return NewGenerationService(gen, projects), projects
}

func TestGenerationService_Anonymous(t *testing.T) {
	svc, _ := newGenerationService(t)

	resp, err := svc.Generate(context.Background(), "", workflow.StepMarket, &dto.GenerateRequest{Idea: "Solar pumps for farmers"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, generation.SourceFallback, resp.Source)
	assert.False(t, resp.Saved)
	assert.Contains(t, string(resp.Data), "marketSize")
}

func TestGenerationService_SavesDraft(t *testing.T) {
	ctx := context.Background()
	svc, projects := newGenerationService(t)

	p, err := projects.Create(ctx, "u1", &dto.CreateProjectRequest{Title: "Pumps"})
	require.NoError(t, err)

	resp, err := svc.Generate(ctx, "u1", workflow.StepIdea, &dto.GenerateRequest{Idea: "Solar pumps for farmers", ProjectID: p.ID})
	require.NoError(t, err)
	assert.True(t, resp.Saved)

	saved, err := projects.Get(ctx, "u1", p.ID)
	require.NoError(t, err)
	require.Len(t, saved.Steps, 1)
	assert.Equal(t, workflow.StepIdea, saved.Steps[0].StepKey)
	assert.Equal(t, generation.SourceFallback, saved.Steps[0].Source)
	assert.False(t, saved.Steps[0].Completed)
}

func TestGenerationService_Errors(t *testing.T) {
	ctx := context.Background()
	svc, projects := newGenerationService(t)

	_, err := svc.Generate(ctx, "u1", "pitch-deck", &dto.GenerateRequest{Idea: "x"})
	assert.ErrorIs(t, err, apperrors.ErrUnknownStep)

	p, err := projects.Create(ctx, "owner", &dto.CreateProjectRequest{Title: "Mine"})
	require.NoError(t, err)

	_, err = svc.Generate(ctx, "intruder", workflow.StepIdea, &dto.GenerateRequest{Idea: "x", ProjectID: p.ID})
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)

	_, err = svc.Generate(ctx, "", workflow.StepIdea, &dto.GenerateRequest{Idea: "x", ProjectID: p.ID})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.HTTPCode)
}
