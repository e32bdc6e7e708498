package dto

import "encoding/json"

type GenerateRequest struct {
	Idea      string `json:"idea" validate:"required,not-blank,max=5000"`
	Context   string `json:"context" validate:"max=20000"`
	ProjectID string `json:"projectId" validate:"omitempty,uuid"`
}

type GenerateResponse struct {
	Success bool            `json:"success"`
	Step    string          `json:"step"`
	Source  string          `json:"source"`
	Data    json.RawMessage `json:"data"`
	// Saved is true when the draft was stored on the project.
	Saved bool `json:"saved"`
}
