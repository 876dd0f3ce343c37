package reasoning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/rahul/relay/internal/tools"
)

type namedTool struct {
	name string
	desc string
}

func (t namedTool) Name() string               { return t.name }
func (t namedTool) Description() string        { return t.desc }
func (t namedTool) Parameters() map[string]any { return map[string]any{"type": "object"} }
func (t namedTool) Call(ctx context.Context, args map[string]any) (tools.Output, error) {
	return tools.Output{}, nil
}

func textOf(t *testing.T, msg llms.MessageContent) string {
	t.Helper()
	require.Len(t, msg.Parts, 1)
	tc, ok := msg.Parts[0].(llms.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestFormatSystemHeader(t *testing.T) {
	f := NewFormatter()
	msgs := f.Format([]tools.Tool{
		namedTool{name: "search", desc: "finds things"},
		namedTool{name: "clock", desc: "tells time"},
	}, nil, nil)

	require.Len(t, msgs, 1)
	assert.Equal(t, llms.ChatMessageTypeSystem, msgs[0].Role)

	header := textOf(t, msgs[0])
	assert.Contains(t, header, "Tool Name: search")
	assert.Contains(t, header, "finds things")
	assert.Contains(t, header, "search, clock")
	assert.NotContains(t, header, "{tool_desc}")
	assert.NotContains(t, header, "{tool_names}")
}

func TestFormatOrdering(t *testing.T) {
	history := []llms.MessageContent{
		{Role: llms.ChatMessageTypeHuman, Parts: []llms.ContentPart{llms.TextPart("find x")}},
	}
	current := []Step{
		ActionStep{Thought: "look", Action: "search", ActionInput: map[string]any{"q": "x"}},
		ObservationStep{Observation: "result-y"},
	}

	msgs := NewFormatter().Format(nil, history, current)
	require.Len(t, msgs, 4)

	assert.Equal(t, llms.ChatMessageTypeSystem, msgs[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, msgs[1].Role)
	assert.Equal(t, "find x", textOf(t, msgs[1]))

	// The model's own steps read back as assistant turns, observations
	// as user turns.
	assert.Equal(t, llms.ChatMessageTypeAI, msgs[2].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, msgs[3].Role)
	assert.Equal(t, "Observation: result-y", textOf(t, msgs[3]))
}

func TestFormatNoTools(t *testing.T) {
	msgs := NewFormatter().Format(nil, nil, nil)
	require.Len(t, msgs, 1)
	assert.Contains(t, textOf(t, msgs[0]), "(no tools available)")
}

func TestFormatCustomHeader(t *testing.T) {
	f := &Formatter{SystemHeader: "tools: {tool_names}"}
	msgs := f.Format([]tools.Tool{namedTool{name: "clock"}}, nil, nil)
	require.Len(t, msgs, 1)
	assert.Equal(t, "tools: clock", textOf(t, msgs[0]))
}
