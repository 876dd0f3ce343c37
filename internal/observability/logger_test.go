package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerEmitsJSONLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf)

	logger.LogToolCall("task-1", "step-1", "search", map[string]any{"q": "x"})
	logger.LogStep("task-1", "step-1", true)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var evt Event
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &evt))
	assert.Equal(t, EventTypeToolCall, evt.Type)
	assert.Equal(t, "task-1", evt.TaskID)
	assert.Equal(t, "step-1", evt.StepID)
	assert.False(t, evt.Timestamp.IsZero())
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.LogReasoning("t", "s", "content")
	logger.Error("boom: %v", "details")
}
