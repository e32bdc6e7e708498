package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepsAreOrdered(t *testing.T) {
	all := All()
	assert.Len(t, all, 10)
	for i, s := range all {
		assert.Equal(t, i+1, s.Order)
	}
	assert.Equal(t, StepIdea, First().Key)
	assert.Equal(t, StepSustainability, all[9].Key)
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Title = "changed"
	assert.Equal(t, "Idea Validation", First().Title)
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("business-model")
	assert.True(t, ok)
	assert.Equal(t, 3, s.Order)

	_, ok = Lookup("marketing")
	assert.False(t, ok)
}

func TestNextIncompleteAndProgress(t *testing.T) {
	completed := map[string]bool{}
	assert.Equal(t, StepIdea, NextIncomplete(completed).Key)
	assert.Equal(t, 0, Progress(completed))

	completed[StepIdea] = true
	completed[StepMarket] = true
	completed[StepTeam] = true
	assert.Equal(t, StepBusinessModel, NextIncomplete(completed).Key)
	assert.Equal(t, 30, Progress(completed))

	completed["unknown"] = true
	assert.Equal(t, 30, Progress(completed))

	for _, s := range All() {
		completed[s.Key] = true
	}
	assert.Equal(t, StepSustainability, NextIncomplete(completed).Key)
	assert.Equal(t, 100, Progress(completed))
}

func TestNext(t *testing.T) {
	s, ok := Next(StepIdea)
	assert.True(t, ok)
	assert.Equal(t, StepMarket, s.Key)

	_, ok = Next(StepSustainability)
	assert.False(t, ok)

	_, ok = Next("nope")
	assert.False(t, ok)
}
