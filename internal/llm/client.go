// Package llm wraps the generative model used to draft workflow content.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// ErrNotConfigured is returned by Disabled so callers can fall back quietly.
var ErrNotConfigured = errors.New("llm: no API key configured")

// Client produces JSON-shaped text for a prompt.
type Client interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// GeminiClient implements Client over the Gemini API.
type GeminiClient struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &GeminiClient{client: client, modelName: model, temperature: 0.4}, nil
}

// GenerateJSON asks for application/json output and returns the cleaned text.
func (g *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.temperature),
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			builder.WriteString(part.Text)
		}
		// first candidate with text is enough
		if builder.Len() > 0 {
			break
		}
	}

	output := CleanJSONBlock(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}

// Disabled is used when no API key is configured.
type Disabled struct{}

func (Disabled) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return "", ErrNotConfigured
}
