package engine

import (
	"fmt"

	"github.com/rahul/relay/internal/reasoning"
	"github.com/rahul/relay/internal/tools"
)

// Response is the externally visible answer assembled from a finished
// reasoning trace.
type Response struct {
	Text    string
	Sources []tools.Output
}

func (r *Response) String() string {
	return r.Text
}

// AssembleResponse converts a reasoning trace and its tool outputs into
// the final response. It is pure and has no side effects.
//
// The answer text comes from the terminal step's dedicated field when the
// trace ends in one, and otherwise falls back to the last entry's own
// content rendering.
func AssembleResponse(trace []reasoning.Step, sources []tools.Output, maxIterations int) (*Response, error) {
	if len(trace) == 0 {
		return nil, ErrNoReasoningSteps
	}
	if len(trace) == maxIterations {
		return nil, fmt.Errorf("%w (%d)", ErrMaxIterations, maxIterations)
	}

	last := trace[len(trace)-1]
	text := last.Content()
	if resp, ok := last.(reasoning.ResponseStep); ok {
		text = resp.Response
	}
	return &Response{Text: text, Sources: sources}, nil
}
