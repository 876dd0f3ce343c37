package reasoning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	step, err := NewParser().Parse(
		"Thought: I need to look this up.\nAction: search\nAction Input: {\"q\": \"x\", \"limit\": 5}",
		false)
	require.NoError(t, err)

	action, ok := step.(ActionStep)
	require.True(t, ok)
	assert.False(t, step.IsTerminal())
	assert.Equal(t, "I need to look this up.", action.Thought)
	assert.Equal(t, "search", action.Action)
	assert.Equal(t, map[string]any{"q": "x", "limit": float64(5)}, action.ActionInput)
}

func TestParseActionRepairsSloppyJSON(t *testing.T) {
	// Models routinely emit python-style dicts despite instructions.
	step, err := NewParser().Parse(
		"Thought: look.\nAction: search\nAction Input: {'q': 'x'}",
		false)
	require.NoError(t, err)

	action, ok := step.(ActionStep)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"q": "x"}, action.ActionInput)
}

func TestParseActionTrailingProse(t *testing.T) {
	step, err := NewParser().Parse(
		"Thought: look.\nAction: search\nAction Input:\n{\"q\": \"x\"}\n",
		false)
	require.NoError(t, err)

	action, ok := step.(ActionStep)
	require.True(t, ok)
	assert.Equal(t, "search", action.Action)
}

func TestParseAnswer(t *testing.T) {
	step, err := NewParser().Parse(
		"Thought: I can answer without using any more tools.\nAnswer: 42",
		false)
	require.NoError(t, err)

	response, ok := step.(ResponseStep)
	require.True(t, ok)
	assert.True(t, step.IsTerminal())
	assert.Equal(t, "42", response.Response)
	assert.Equal(t, "I can answer without using any more tools.", response.Thought)
}

func TestParseImplicitResponse(t *testing.T) {
	// Output without the thought-action format is a direct answer.
	step, err := NewParser().Parse("The capital of France is Paris.", false)
	require.NoError(t, err)

	response, ok := step.(ResponseStep)
	require.True(t, ok)
	assert.True(t, step.IsTerminal())
	assert.Equal(t, "The capital of France is Paris.", response.Response)
}

func TestParseRejectsMalformedActionInput(t *testing.T) {
	_, err := NewParser().Parse(
		"Thought: look.\nAction: search\nAction Input: not an object",
		false)
	require.Error(t, err)
}

func TestParseRejectsThoughtOnly(t *testing.T) {
	_, err := NewParser().Parse("Thought: hmm, let me think.", false)
	require.Error(t, err)
}

func TestStepContent(t *testing.T) {
	action := ActionStep{Thought: "look", Action: "search", ActionInput: map[string]any{"q": "x"}}
	assert.Equal(t, "Thought: look\nAction: search\nAction Input: {\"q\":\"x\"}", action.Content())

	observation := ObservationStep{Observation: "result-y"}
	assert.Equal(t, "Observation: result-y", observation.Content())

	response := ResponseStep{Thought: "done", Response: "42"}
	assert.Equal(t, "Response: 42", response.Content())
}
