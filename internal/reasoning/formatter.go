package reasoning

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/rahul/relay/internal/tools"
)

const defaultSystemHeader = `You are designed to help with a variety of tasks, from answering questions to providing summaries to other types of analyses.

## Tools
You have access to a wide variety of tools. You are responsible for using
the tools in any sequence you deem appropriate to complete the task at hand.
This may require breaking the task into subtasks and using different tools
to complete each subtask.

You have access to the following tools:
{tool_desc}

## Output Format
To answer the question, please use the following format.

Thought: I need to use a tool to help me answer the question.
Action: tool name (one of {tool_names})
Action Input: the input to the tool, in a JSON format representing the kwargs (e.g. {"text": "hello world", "num_beams": 5})

Please use a valid JSON format for the action input. Do NOT do this {'text': 'hello world', 'num_beams': 5}.

If this format is used, the user will respond in the following format:

Observation: tool response

You should keep repeating the above format until you have enough information
to answer the question without using any more tools. At that point, you MUST
respond in the following format:

Thought: I can answer without using any more tools.
Answer: [your answer here]
`

// Formatter renders tool descriptions, conversational history and the
// current reasoning trace into a model-ready message sequence. It is pure:
// it never mutates its inputs.
type Formatter struct {
	// SystemHeader overrides the default header template. The
	// placeholders {tool_desc} and {tool_names} are substituted.
	SystemHeader string
}

func NewFormatter() *Formatter {
	return &Formatter{SystemHeader: defaultSystemHeader}
}

func (f *Formatter) Format(ts []tools.Tool, history []llms.MessageContent, current []Step) []llms.MessageContent {
	header := f.SystemHeader
	if header == "" {
		header = defaultSystemHeader
	}
	header = strings.ReplaceAll(header, "{tool_desc}", describeTools(ts))
	header = strings.ReplaceAll(header, "{tool_names}", toolNames(ts))

	messages := make([]llms.MessageContent, 0, 1+len(history)+len(current))
	messages = append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeSystem,
		Parts: []llms.ContentPart{llms.TextPart(header)},
	})
	messages = append(messages, history...)

	// Observations read as user turns; everything the model produced
	// itself reads back as assistant turns.
	for _, step := range current {
		role := llms.ChatMessageTypeAI
		if _, ok := step.(ObservationStep); ok {
			role = llms.ChatMessageTypeHuman
		}
		messages = append(messages, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextPart(step.Content())},
		})
	}
	return messages
}

func describeTools(ts []tools.Tool) string {
	if len(ts) == 0 {
		return "(no tools available)"
	}
	descs := make([]string, 0, len(ts))
	for _, t := range ts {
		schema, err := json.Marshal(t.Parameters())
		if err != nil {
			schema = []byte("{}")
		}
		descs = append(descs, fmt.Sprintf("> Tool Name: %s\nTool Description: %s\nTool Args: %s", t.Name(), t.Description(), schema))
	}
	return strings.Join(descs, "\n\n")
}

func toolNames(ts []tools.Tool) string {
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		names = append(names, t.Name())
	}
	return strings.Join(names, ", ")
}
