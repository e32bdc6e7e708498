package dto

import (
	"encoding/json"

	"launchpad_backend/internal/models"
)

type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required,not-blank,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Category    string `json:"category" validate:"max=100"`
}

// UpdateProjectRequest - nil поля не меняются
type UpdateProjectRequest struct {
	Title       *string `json:"title" validate:"omitnil,not-blank,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
}

type SaveStepRequest struct {
	Data      json.RawMessage `json:"data" validate:"required"`
	Completed bool            `json:"completed"`
	Source    string          `json:"source" validate:"omitempty,oneof=ai fallback user"`
}

type ProjectListResponse struct {
	Projects []models.Project `json:"projects"`
	Total    int              `json:"total"`
}

type StepProgress struct {
	Key       string `json:"key"`
	Order     int    `json:"order"`
	Title     string `json:"title"`
	Saved     bool   `json:"saved"`
	Completed bool   `json:"completed"`
}

type ProgressResponse struct {
	ProjectID   string         `json:"projectId"`
	CurrentStep string         `json:"currentStep"`
	Percentage  int            `json:"percentage"`
	Completed   int            `json:"completed"`
	Total       int            `json:"total"`
	Steps       []StepProgress `json:"steps"`
}
