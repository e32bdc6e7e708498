package repositories

import (
	"context"
	"errors"

	"launchpad_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id string) (*models.Project, error)
	// FindOwned returns ErrProjectNotFound for projects of other users as well.
	FindOwned(ctx context.Context, userID, id string) (*models.Project, error)
	ListByUser(ctx context.Context, userID string) ([]models.Project, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, userID, id string) error

	// UpsertStep creates or replaces the content of one step.
	UpsertStep(ctx context.Context, step *models.ProjectStep) error
	ListSteps(ctx context.Context, projectID string) ([]models.ProjectStep, error)
}

type ProjectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Preload("Steps").First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) FindOwned(ctx context.Context, userID, id string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Preload("Steps").
		Where("id = ? AND user_id = ?", id, userID).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepositoryImpl) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Model(project).Select("Title", "Description", "Category", "CurrentStep").Updates(project).Error
}

// Delete удаляет проект вместе с шагами в одной транзакции.
func (r *ProjectRepositoryImpl) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		return tx.Where("project_id = ?", id).Delete(&models.ProjectStep{}).Error
	})
}

func (r *ProjectRepositoryImpl) UpsertStep(ctx context.Context, step *models.ProjectStep) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "step_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "source", "completed", "updated_at"}),
	}).Create(step).Error
}

func (r *ProjectRepositoryImpl) ListSteps(ctx context.Context, projectID string) ([]models.ProjectStep, error) {
	var steps []models.ProjectStep
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&steps).Error
	return steps, err
}
