package algorithms

import (
	"slices"
	"strings"

	"launchpad_backend/internal/models"
)

const (
	// MaxCofounderResults caps the ranked list returned to the client.
	MaxCofounderResults = 20
	// DefaultBaseScore is used for candidates without a precomputed base score.
	DefaultBaseScore = 70

	keywordPoints  = 5
	categoryPoints = 10
	skillPoints    = 3
)

// CofounderMatch is the ranked, capped output of MatchCofounders.
type CofounderMatch struct {
	Results    []models.ScoredCandidate
	TotalFound int
}

// MatchCofounders filters, scores and ranks the corpus against the criteria.
// The corpus is not modified. Results are sorted by score (stable for ties)
// and capped at MaxCofounderResults; TotalFound counts every survivor.
func MatchCofounders(criteria models.SearchCriteria, corpus []models.CandidateProfile) CofounderMatch {
	keywords := normalizeKeywords(criteria.ProblemKeywords)
	category := strings.ToLower(strings.TrimSpace(criteria.ProblemCategory))
	query := strings.ToLower(strings.TrimSpace(criteria.SearchQuery))
	browseAll := len(keywords) == 0 && category == ""

	scored := make([]models.ScoredCandidate, 0, len(corpus))
	for _, candidate := range corpus {
		keywordHits := countMatches(keywords, candidate.Project.Keywords)
		skillHits := countMatches(keywords, candidate.Skills)
		categoryHit := category != "" && strings.Contains(strings.ToLower(candidate.Project.Category), category)

		if !browseAll && keywordHits == 0 && skillHits == 0 && !categoryHit {
			continue
		}
		if query != "" && !matchesQuery(query, candidate) {
			continue
		}

		score := DefaultBaseScore
		if candidate.BaseScore != nil {
			score = *candidate.BaseScore
		}
		score += keywordHits * keywordPoints
		score += skillHits * skillPoints
		if categoryHit {
			score += categoryPoints
		}

		scored = append(scored, models.ScoredCandidate{
			CandidateProfile: candidate,
			MatchScore:       clampScore(score),
		})
	}

	slices.SortStableFunc(scored, func(a, b models.ScoredCandidate) int {
		return b.MatchScore - a.MatchScore
	})

	total := len(scored)
	if len(scored) > MaxCofounderResults {
		scored = scored[:MaxCofounderResults]
	}

	return CofounderMatch{Results: scored, TotalFound: total}
}

// bidirectionalMatch reports whether either lowercase string contains the other.
func bidirectionalMatch(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// countMatches counts keywords matching at least one of the values.
func countMatches(keywords, values []string) int {
	if len(keywords) == 0 || len(values) == 0 {
		return 0
	}

	lowered := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			lowered = append(lowered, v)
		}
	}

	hits := 0
	for _, kw := range keywords {
		for _, v := range lowered {
			if bidirectionalMatch(kw, v) {
				hits++
				break
			}
		}
	}
	return hits
}

func matchesQuery(query string, c models.CandidateProfile) bool {
	if strings.Contains(strings.ToLower(c.Name), query) ||
		strings.Contains(strings.ToLower(c.Role), query) ||
		strings.Contains(strings.ToLower(c.Project.Title), query) {
		return true
	}
	for _, skill := range c.Skills {
		if strings.Contains(strings.ToLower(skill), query) {
			return true
		}
	}
	return false
}

// normalizeKeywords lowercases and drops blank entries; order and duplicates are kept.
func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

func clampScore(score int) int {
	return max(0, min(score, 100))
}
