package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Title string `json:"title" validate:"not-blank,max=10"`
	Step  string `json:"step" validate:"omitempty,step-key"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(&sample{Email: "a@example.com", Title: "Plan", Step: "mvp"}))
}

func TestValidate_FieldMessages(t *testing.T) {
	v := New()
	err := v.Validate(&sample{Email: "nope", Title: "   ", Step: "pitch"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "Must not be blank", vErr.Errors["title"])
	assert.Equal(t, "Must be a known workflow step", vErr.Errors["step"])
	assert.Contains(t, vErr.Error(), "Validation failed")
}

func TestValidate_MaxLength(t *testing.T) {
	err := New().Validate(&sample{Email: "a@example.com", Title: "far too long title"})
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be at most 10 characters long", vErr.Errors["title"])
}

type counted struct {
	Amount int      `json:"amount" validate:"min=1"`
	Tags   []string `json:"tags" validate:"max=1"`
}

func TestValidate_UnitsAndOrdering(t *testing.T) {
	err := New().Validate(&counted{Amount: 0, Tags: []string{"a", "b"}})
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be at least 1", vErr.Errors["amount"])
	assert.Equal(t, "Must be at most 1 items long", vErr.Errors["tags"])
	assert.Equal(t, "Validation failed: amount: Must be at least 1; tags: Must be at most 1 items long", vErr.Error())
}

func TestValidate_NonStruct(t *testing.T) {
	err := New().Validate("plain string")
	require.Error(t, err)
	_, ok := err.(*ValidationError)
	assert.False(t, ok)
}
