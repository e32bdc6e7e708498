package generation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"launchpad_backend/internal/llm"
	"launchpad_backend/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

type slowClient struct{}

func (slowClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

const sampleIdea = "An AI tutor that helps rural students learn mathematics in their own language"

func newGenerator(t *testing.T, client llm.Client) *Generator {
	t.Helper()
	g, err := NewGenerator(client, time.Second)
	require.NoError(t, err)
	return g
}

func TestGenerate_UsesValidModelOutput(t *testing.T) {
	client := &fakeClient{response: "```json\n" + `{
		"title": "Math Mitra",
		"summary": "Vernacular AI tutor",
		"problem": "Rural students lack tutors",
		"solution": "Voice first tutoring app",
		"targetAudience": "Class 6-10 students",
		"category": "EdTech",
		"keywords": ["education", "ai"]
	}` + "\n```"}
	g := newGenerator(t, client)

	res, err := g.Generate(context.Background(), workflow.StepIdea, Input{Idea: sampleIdea})
	require.NoError(t, err)

	assert.Equal(t, SourceAI, res.Source)
	assert.Equal(t, workflow.StepIdea, res.Step)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &payload))
	assert.Equal(t, "Math Mitra", payload["title"])

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], sampleIdea)
	assert.Contains(t, client.prompts[0], "Idea Validation")
}

func TestGenerate_FallsBack(t *testing.T) {
	tests := []struct {
		name   string
		client llm.Client
	}{
		{"no api key", llm.Disabled{}},
		{"nil client", nil},
		{"model error", &fakeClient{err: errors.New("quota exceeded")}},
		{"not json", &fakeClient{response: "I am sorry, I cannot do that"}},
		{"schema mismatch", &fakeClient{response: `{"title": "only a title"}`}},
		{"wrong type", &fakeClient{response: `{"title": 1, "summary": "", "problem": "", "solution": "", "targetAudience": "", "category": "", "keywords": []}`}},
		{"timeout", slowClient{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGenerator(tt.client, 20*time.Millisecond)
			require.NoError(t, err)

			res, err := g.Generate(context.Background(), workflow.StepIdea, Input{Idea: sampleIdea})
			require.NoError(t, err)
			assert.Equal(t, SourceFallback, res.Source)

			var payload map[string]any
			require.NoError(t, json.Unmarshal(res.Data, &payload))
			assert.Equal(t, "EdTech", payload["category"])
		})
	}
}

func TestGenerate_UnknownStep(t *testing.T) {
	g := newGenerator(t, llm.Disabled{})
	_, err := g.Generate(context.Background(), "marketing-plan", Input{Idea: sampleIdea})
	assert.Error(t, err)
}

func TestFallback_SatisfiesEverySchema(t *testing.T) {
	schemas, err := compileSchemas()
	require.NoError(t, err)

	for _, step := range workflow.All() {
		for _, idea := range []string{sampleIdea, ""} {
			payload, err := json.Marshal(Fallback(step.Key, Input{Idea: idea}))
			require.NoError(t, err)
			assert.NoError(t, validatePayload(schemas[step.Key], payload), "step %s idea %q", step.Key, idea)
		}
	}
}

func TestFallback_Deterministic(t *testing.T) {
	in := Input{Idea: sampleIdea}
	for _, step := range workflow.All() {
		a, _ := json.Marshal(Fallback(step.Key, in))
		b, _ := json.Marshal(Fallback(step.Key, in))
		assert.JSONEq(t, string(a), string(b), step.Key)
	}
}

func TestEveryStepHasSchemaAndInstructions(t *testing.T) {
	for _, step := range workflow.All() {
		assert.Contains(t, stepSchemas, step.Key)
		assert.Contains(t, stepInstructions, step.Key)
	}
}

func TestKeywords(t *testing.T) {
	got := Keywords("An AI tutor that helps rural students learn maths, maths and more!")
	assert.Equal(t, []string{"tutor", "rural", "students", "learn", "maths"}, got)

	assert.Empty(t, Keywords(""))
	assert.Len(t, Keywords("alpha bravo charlie delta echoes foxtrot golf hotel india juliet kilo"), maxFallbackKeywords)
}

func TestGuessCategory(t *testing.T) {
	assert.Equal(t, "HealthTech", GuessCategory("Telemedicine for village clinics"))
	assert.Equal(t, "FinTech", GuessCategory("Micro loans for street vendors"))
	assert.Equal(t, "AgriTech", GuessCategory("Crop price alerts"))
	assert.Equal(t, "General", GuessCategory("Something else entirely"))
}

func TestBuildPrompt_IncludesContext(t *testing.T) {
	step, _ := workflow.Lookup(workflow.StepMarket)
	prompt, err := BuildPrompt(step, Input{Idea: "  idea text  ", Context: "category: EdTech"})
	require.NoError(t, err)
	assert.Contains(t, prompt, "idea text")
	assert.Contains(t, prompt, "category: EdTech")
	assert.Contains(t, prompt, `"marketSize"`)
}
