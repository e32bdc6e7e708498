package models

// DefaultSearchLocation is reported back when the caller sends no location.
const DefaultSearchLocation = "India"

// CandidateProject is the project a candidate is attached to in the corpus.
type CandidateProject struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Technologies []string `json:"technologies"`
	Keywords     []string `json:"keywords"`
}

// CandidateProfile is one potential cofounder from the static corpus.
type CandidateProfile struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Role       string           `json:"role"`
	Skills     []string         `json:"skills"`
	Experience string           `json:"experience,omitempty"`
	Location   string           `json:"location,omitempty"`
	Avatar     string           `json:"avatar,omitempty"`
	LinkedIn   string           `json:"linkedin,omitempty"`
	Project    CandidateProject `json:"project"`
	// BaseScore overrides the default base relevance when set.
	BaseScore *int `json:"baseScore,omitempty"`
}

// ScoredCandidate is a copy of a profile with the per-request score attached.
type ScoredCandidate struct {
	CandidateProfile
	MatchScore int `json:"matchScore"`
}

type SearchCriteria struct {
	ProblemKeywords []string `json:"problemKeywords"`
	ProblemCategory string   `json:"problemCategory"`
	SearchQuery     string   `json:"searchQuery"`
	Location        string   `json:"location"`
}
