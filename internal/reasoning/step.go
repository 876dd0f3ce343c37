package reasoning

import (
	"encoding/json"
	"fmt"
)

// Step is one record in a task's reasoning trace.
type Step interface {
	// Content renders the step the way it appears in the next prompt.
	Content() string
	// IsTerminal reports whether the step ends the task with a final answer.
	IsTerminal() bool
}

// ActionStep is the model's stated intent to invoke a named tool.
type ActionStep struct {
	Thought     string
	Action      string
	ActionInput map[string]any
}

func (s ActionStep) Content() string {
	input, err := json.Marshal(s.ActionInput)
	if err != nil {
		input = []byte("{}")
	}
	return fmt.Sprintf("Thought: %s\nAction: %s\nAction Input: %s", s.Thought, s.Action, input)
}

func (s ActionStep) IsTerminal() bool { return false }

// ObservationStep captures a tool's output, fed back into the next prompt.
type ObservationStep struct {
	Observation string
}

func (s ObservationStep) Content() string {
	return "Observation: " + s.Observation
}

func (s ObservationStep) IsTerminal() bool { return false }

// ResponseStep is a terminal free-text answer.
type ResponseStep struct {
	Thought  string
	Response string
}

func (s ResponseStep) Content() string {
	return "Response: " + s.Response
}

func (s ResponseStep) IsTerminal() bool { return true }
