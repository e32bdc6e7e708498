package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json fence", "```json\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"generic fence", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"other language fence", "```javascript\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"plain", `{"key": "value"}`, `{"key": "value"}`},
		{"preamble", "Here is the JSON:\n{\"a\": 1}", `{"a": 1}`},
		{"trailing chatter", "{\"a\": 1}\n\nHope this helps!", `{"a": 1}`},
		{"array", "Items:\n[\"x\", \"y\"]", `["x", "y"]`},
		{"braces in strings", `{"t": "Hello {name}"} extra`, `{"t": "Hello {name}"}`},
		{"escaped quotes", `Out: {"m": "He said \"hi}\""}`, `{"m": "He said \"hi}\""}`},
		{"no json", "sorry, I cannot help", "sorry, I cannot help"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONUnbalanced(t *testing.T) {
	assert.Empty(t, ExtractJSON(`{"a": {"b": 1}`))
	assert.Empty(t, ExtractJSON("no json here"))
}

func TestDisabledClient(t *testing.T) {
	_, err := Disabled{}.GenerateJSON(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "  ", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
