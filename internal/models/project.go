package models

import (
	"gorm.io/datatypes"
)

// Project is one startup plan moving through the ten workflow steps.
type Project struct {
	BaseModel
	UserID      string `gorm:"type:varchar(36);not null;index" json:"userId"`
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"type:varchar(100)" json:"category"`
	CurrentStep string `gorm:"type:varchar(40);not null" json:"currentStep"`

	Steps []ProjectStep `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"steps,omitempty"`
}

// ProjectStep holds the saved content of one workflow step.
type ProjectStep struct {
	BaseModel
	ProjectID string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_project_step" json:"projectId"`
	StepKey   string         `gorm:"type:varchar(40);not null;uniqueIndex:idx_project_step" json:"step"`
	Data      datatypes.JSON `json:"data"`
	Source    string         `gorm:"type:varchar(20)" json:"source,omitempty"` // ai, fallback, user
	Completed bool           `gorm:"default:false" json:"completed"`
}
