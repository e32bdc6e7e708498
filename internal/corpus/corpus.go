// Package corpus loads the static cofounder dataset the matcher ranks against.
package corpus

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"launchpad_backend/internal/models"
)

//go:embed data/cofounders.json
var bundled []byte

// Provider supplies the read-only candidate list.
type Provider interface {
	Candidates(ctx context.Context) ([]models.CandidateProfile, error)
}

type projectRecord struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	Technologies []string       `json:"technologies"`
	Keywords     []string       `json:"keywords"`
	Team         []memberRecord `json:"team"`
}

type memberRecord struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Role       string   `json:"role"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Location   string   `json:"location"`
	Avatar     string   `json:"avatar"`
	LinkedIn   string   `json:"linkedin"`
	BaseScore  *int     `json:"baseScore"`
}

// Static is a Provider over a slice loaded once at startup.
type Static struct {
	candidates []models.CandidateProfile
}

// Load reads the dataset at path, or the bundled one when path is empty.
func Load(path string) (*Static, error) {
	if path == "" {
		return Parse(bytes.NewReader(bundled))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes the project → team layout into a flat candidate list in
// file order.
func Parse(r io.Reader) (*Static, error) {
	var projects []projectRecord
	if err := json.NewDecoder(r).Decode(&projects); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}

	var candidates []models.CandidateProfile
	for pi, p := range projects {
		if strings.TrimSpace(p.Title) == "" {
			return nil, fmt.Errorf("corpus project #%d has no title", pi)
		}
		projectID := p.ID
		if projectID == "" {
			projectID = fmt.Sprintf("project-%d", pi+1)
		}
		project := models.CandidateProject{
			ID:           projectID,
			Title:        p.Title,
			Description:  p.Description,
			Category:     p.Category,
			Technologies: p.Technologies,
			Keywords:     p.Keywords,
		}

		for mi, m := range p.Team {
			if strings.TrimSpace(m.Name) == "" {
				return nil, fmt.Errorf("corpus project %s member #%d has no name", projectID, mi)
			}
			id := m.ID
			if id == "" {
				id = fmt.Sprintf("%s-member-%d", projectID, mi+1)
			}
			candidates = append(candidates, models.CandidateProfile{
				ID:         id,
				Name:       m.Name,
				Role:       m.Role,
				Skills:     m.Skills,
				Experience: m.Experience,
				Location:   m.Location,
				Avatar:     m.Avatar,
				LinkedIn:   m.LinkedIn,
				Project:    project,
				BaseScore:  m.BaseScore,
			})
		}
	}

	return &Static{candidates: candidates}, nil
}

// NewStatic wraps an in-memory list.
func NewStatic(candidates []models.CandidateProfile) *Static {
	return &Static{candidates: candidates}
}

func (s *Static) Candidates(ctx context.Context) ([]models.CandidateProfile, error) {
	return s.candidates, nil
}

func (s *Static) Len() int {
	return len(s.candidates)
}

// Unavailable is installed when the dataset failed to load; every lookup
// reports the original error.
type Unavailable struct {
	Err error
}

func (u Unavailable) Candidates(ctx context.Context) ([]models.CandidateProfile, error) {
	if u.Err == nil {
		return nil, errors.New("corpus unavailable")
	}
	return nil, u.Err
}
