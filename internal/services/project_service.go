package services

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"launchpad_backend/internal/logger"
	"launchpad_backend/internal/models"
	"launchpad_backend/internal/repositories"
	"launchpad_backend/internal/services/dto"
	"launchpad_backend/internal/workflow"
	"launchpad_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type ProjectService interface {
	List(ctx context.Context, userID string) (*dto.ProjectListResponse, error)
	Create(ctx context.Context, userID string, req *dto.CreateProjectRequest) (*models.Project, error)
	Get(ctx context.Context, userID, projectID string) (*models.Project, error)
	Update(ctx context.Context, userID, projectID string, req *dto.UpdateProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, userID, projectID string) error
	SaveStep(ctx context.Context, userID, projectID, stepKey string, req *dto.SaveStepRequest) (*models.Project, error)
	Progress(ctx context.Context, userID, projectID string) (*dto.ProgressResponse, error)
}

// SubscriptionChecker reports whether a user is on a paid plan.
type SubscriptionChecker interface {
	HasActiveSubscription(ctx context.Context, userID string) (bool, error)
}

type ProjectServiceImpl struct {
	projectRepo      repositories.ProjectRepository
	subscriptions    SubscriptionChecker
	freeProjectLimit int
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	subscriptions SubscriptionChecker,
	freeProjectLimit int,
) ProjectService {
	return &ProjectServiceImpl{
		projectRepo:      projectRepo,
		subscriptions:    subscriptions,
		freeProjectLimit: freeProjectLimit,
	}
}

func (s *ProjectServiceImpl) List(ctx context.Context, userID string) (*dto.ProjectListResponse, error) {
	projects, err := s.projectRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return &dto.ProjectListResponse{Projects: projects, Total: len(projects)}, nil
}

// Create проверяет лимит бесплатного плана перед созданием проекта.
func (s *ProjectServiceImpl) Create(ctx context.Context, userID string, req *dto.CreateProjectRequest) (*models.Project, error) {
	if err := s.checkLimit(ctx, userID); err != nil {
		return nil, err
	}

	project := &models.Project{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		CurrentStep: workflow.First().Key,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Project created", "project_id", project.ID)
	return project, nil
}

func (s *ProjectServiceImpl) checkLimit(ctx context.Context, userID string) error {
	if s.freeProjectLimit <= 0 {
		return nil
	}

	count, err := s.projectRepo.CountByUser(ctx, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if count < int64(s.freeProjectLimit) {
		return nil
	}

	active, err := s.subscriptions.HasActiveSubscription(ctx, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !active {
		return apperrors.ErrProjectLimitReached.WithDetails(map[string]int{"limit": s.freeProjectLimit})
	}
	return nil
}

func (s *ProjectServiceImpl) Get(ctx context.Context, userID, projectID string) (*models.Project, error) {
	project, err := s.projectRepo.FindOwned(ctx, userID, projectID)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return project, nil
}

func (s *ProjectServiceImpl) Update(ctx context.Context, userID, projectID string, req *dto.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		project.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		project.Category = strings.TrimSpace(*req.Category)
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return project, nil
}

func (s *ProjectServiceImpl) Delete(ctx context.Context, userID, projectID string) error {
	if err := s.projectRepo.Delete(ctx, userID, projectID); err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "Project deleted", "project_id", projectID)
	return nil
}

// SaveStep сохраняет содержимое шага и двигает currentStep к первому
// незавершённому шагу.
func (s *ProjectServiceImpl) SaveStep(ctx context.Context, userID, projectID, stepKey string, req *dto.SaveStepRequest) (*models.Project, error) {
	if _, ok := workflow.Lookup(stepKey); !ok {
		return nil, apperrors.ErrUnknownStep
	}

	data := bytes.TrimSpace(req.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, apperrors.ValidationError(map[string]string{"data": "This field is required"})
	}

	project, err := s.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = "user"
	}

	step := &models.ProjectStep{
		ProjectID: project.ID,
		StepKey:   stepKey,
		Data:      datatypes.JSON(data),
		Source:    source,
		Completed: req.Completed,
	}
	if err := s.projectRepo.UpsertStep(ctx, step); err != nil {
		return nil, apperrors.InternalError(err)
	}

	steps, err := s.projectRepo.ListSteps(ctx, project.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	project.Steps = steps
	project.CurrentStep = workflow.NextIncomplete(completedSteps(steps)).Key

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return project, nil
}

func (s *ProjectServiceImpl) Progress(ctx context.Context, userID, projectID string) (*dto.ProgressResponse, error) {
	project, err := s.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	saved := make(map[string]bool, len(project.Steps))
	for _, st := range project.Steps {
		saved[st.StepKey] = true
	}
	completed := completedSteps(project.Steps)

	all := workflow.All()
	resp := &dto.ProgressResponse{
		ProjectID:   project.ID,
		CurrentStep: project.CurrentStep,
		Percentage:  workflow.Progress(completed),
		Total:       len(all),
		Steps:       make([]dto.StepProgress, 0, len(all)),
	}
	for _, st := range all {
		if completed[st.Key] {
			resp.Completed++
		}
		resp.Steps = append(resp.Steps, dto.StepProgress{
			Key:       st.Key,
			Order:     st.Order,
			Title:     st.Title,
			Saved:     saved[st.Key],
			Completed: completed[st.Key],
		})
	}
	return resp, nil
}

func completedSteps(steps []models.ProjectStep) map[string]bool {
	done := make(map[string]bool, len(steps))
	for _, st := range steps {
		if st.Completed {
			done[st.StepKey] = true
		}
	}
	return done
}
