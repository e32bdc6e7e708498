package services

import (
	"context"

	"launchpad_backend/internal/generation"
	"launchpad_backend/internal/logger"
	"launchpad_backend/internal/services/dto"
	"launchpad_backend/internal/workflow"
	"launchpad_backend/pkg/apperrors"
)

type GenerationService interface {
	// Generate drafts content for a step. userID may be empty for anonymous
	// callers, in which case ProjectID must be empty too.
	Generate(ctx context.Context, userID, stepKey string, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
}

type GenerationServiceImpl struct {
	generator *generation.Generator
	projects  ProjectService
}

func NewGenerationService(generator *generation.Generator, projects ProjectService) GenerationService {
	return &GenerationServiceImpl{generator: generator, projects: projects}
}

func (s *GenerationServiceImpl) Generate(ctx context.Context, userID, stepKey string, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	if _, ok := workflow.Lookup(stepKey); !ok {
		return nil, apperrors.ErrUnknownStep
	}

	if req.ProjectID != "" {
		if userID == "" {
			return nil, apperrors.NewUnauthorizedError("Sign in to save drafts to a project")
		}
		// проверяем владельца до обращения к модели
		if _, err := s.projects.Get(ctx, userID, req.ProjectID); err != nil {
			return nil, err
		}
	}

	result, err := s.generator.Generate(ctx, stepKey, generation.Input{Idea: req.Idea, Context: req.Context})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.GenerateResponse{
		Success: true,
		Step:    result.Step,
		Source:  result.Source,
		Data:    result.Data,
	}

	if req.ProjectID != "" {
		_, err := s.projects.SaveStep(ctx, userID, req.ProjectID, stepKey, &dto.SaveStepRequest{
			Data:   result.Data,
			Source: result.Source,
		})
		if err != nil {
			// черновик не сохранился, но сам результат отдаём
			logger.CtxWithError(ctx, "Failed to save generated draft", err, "project_id", req.ProjectID, "step", stepKey)
		} else {
			resp.Saved = true
		}
	}

	return resp, nil
}
