// Package generation drafts workflow step content with the LLM and falls back
// to deterministic templates when the model is unavailable or misbehaves.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"launchpad_backend/internal/llm"
	"launchpad_backend/internal/logger"
	"launchpad_backend/internal/workflow"

	"github.com/xeipuuv/gojsonschema"
)

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
	SourceUser     = "user"
)

// Input is what the founder sends for one step.
type Input struct {
	Idea    string
	Context string
}

type Result struct {
	Step   string          `json:"step"`
	Source string          `json:"source"`
	Data   json.RawMessage `json:"data"`
}

type Generator struct {
	client  llm.Client
	timeout time.Duration
	schemas map[string]*gojsonschema.Schema
}

func NewGenerator(client llm.Client, timeout time.Duration) (*Generator, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = llm.Disabled{}
	}
	return &Generator{client: client, timeout: timeout, schemas: schemas}, nil
}

// Generate returns model output for step when it parses and validates,
// otherwise the fallback payload. The only error is an unknown step.
func (g *Generator) Generate(ctx context.Context, stepKey string, in Input) (*Result, error) {
	step, ok := workflow.Lookup(stepKey)
	if !ok {
		return nil, fmt.Errorf("unknown step %q", stepKey)
	}

	data, err := g.fromModel(ctx, step, in)
	if err == nil {
		return &Result{Step: step.Key, Source: SourceAI, Data: data}, nil
	}

	logger.CtxWarn(ctx, "AI generation failed, using fallback", "step", step.Key, "error", err.Error())

	fallback, err := json.Marshal(Fallback(step.Key, in))
	if err != nil {
		return nil, fmt.Errorf("marshal fallback for %s: %w", step.Key, err)
	}
	return &Result{Step: step.Key, Source: SourceFallback, Data: fallback}, nil
}

func (g *Generator) fromModel(ctx context.Context, step workflow.Step, in Input) (json.RawMessage, error) {
	prompt, err := BuildPrompt(step, in)
	if err != nil {
		return nil, err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	text, err := g.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	cleaned := llm.CleanJSONBlock(text)
	if !json.Valid([]byte(cleaned)) {
		return nil, fmt.Errorf("model returned invalid JSON")
	}

	if err := validatePayload(g.schemas[step.Key], []byte(cleaned)); err != nil {
		return nil, err
	}
	return json.RawMessage(cleaned), nil
}
