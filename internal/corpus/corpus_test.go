package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBundledDataset(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	candidates, err := s.Candidates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, len(candidates))

	first := candidates[0]
	assert.Equal(t, "Ananya Iyer", first.Name)
	assert.Equal(t, "ShikshaAI", first.Project.Title)
	assert.Equal(t, "EdTech", first.Project.Category)
	require.NotNil(t, first.BaseScore)
	assert.Equal(t, 82, *first.BaseScore)
	assert.Nil(t, candidates[1].BaseScore)

	ids := make(map[string]bool)
	for _, c := range candidates {
		assert.False(t, ids[c.ID], "duplicate id %s", c.ID)
		ids[c.ID] = true
	}
}

func TestParseFlattensTeamsInOrder(t *testing.T) {
	s, err := Parse(strings.NewReader(`[
		{"title": "One", "category": "A", "keywords": ["k1"], "team": [{"name": "x"}, {"name": "y", "id": "custom"}]},
		{"id": "p2", "title": "Two", "team": [{"name": "z", "skills": ["Go"]}]}
	]`))
	require.NoError(t, err)

	candidates, _ := s.Candidates(context.Background())
	require.Len(t, candidates, 3)
	assert.Equal(t, "project-1-member-1", candidates[0].ID)
	assert.Equal(t, "custom", candidates[1].ID)
	assert.Equal(t, "p2-member-1", candidates[2].ID)
	assert.Equal(t, []string{"k1"}, candidates[1].Project.Keywords)
	assert.Equal(t, "Two", candidates[2].Project.Title)
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := map[string]string{
		"not json":        `{{`,
		"object":          `{"title": "x"}`,
		"missing title":   `[{"team": []}]`,
		"nameless member": `[{"title": "t", "team": [{"role": "CTO"}]}]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title":"T","team":[{"name":"n"}]}]`), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestUnavailableReportsError(t *testing.T) {
	cause := errors.New("disk gone")

	_, err := Unavailable{Err: cause}.Candidates(context.Background())
	assert.ErrorIs(t, err, cause)

	_, err = Unavailable{}.Candidates(context.Background())
	assert.Error(t, err)
}
