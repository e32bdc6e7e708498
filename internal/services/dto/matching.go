package dto

import "launchpad_backend/internal/models"

// CofounderMatchResponse - успешный ответ подбора кофаундеров
type CofounderMatchResponse struct {
	Success        bool                     `json:"success"`
	Cofounders     []models.ScoredCandidate `json:"cofounders"`
	TotalFound     int                      `json:"totalFound"`
	SearchCriteria models.SearchCriteria    `json:"searchCriteria"`
}
