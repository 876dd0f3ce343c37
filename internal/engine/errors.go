package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyModelOutput is returned when the model response carries no
	// text content.
	ErrEmptyModelOutput = errors.New("engine: model returned empty output")
	// ErrUnexpectedStepType is returned when the parser yields a step
	// that is neither terminal nor an action. The parser contract should
	// prevent this; the engine verifies it anyway.
	ErrUnexpectedStepType = errors.New("engine: expected an action reasoning step")
	// ErrUnknownTool is returned when an action names a tool outside the
	// resolved set. There is no fallback and no fuzzy matching.
	ErrUnknownTool = errors.New("engine: action names an unknown tool")
	// ErrNoReasoningSteps is returned when a response is assembled from
	// an empty trace.
	ErrNoReasoningSteps = errors.New("engine: no reasoning steps were taken")
	// ErrMaxIterations is returned once the trace length hits the
	// configured cap; the task is over and the caller must stop looping.
	ErrMaxIterations = errors.New("engine: reached max iterations")
	// ErrStreamingNotSupported is returned by the streaming entry points,
	// which are declared but deliberately unimplemented.
	ErrStreamingNotSupported = errors.New("engine: streaming is not supported")
)

// ParseError wraps the output parser's own error when it rejects model
// text.
type ParseError struct {
	Output string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("engine: could not parse model output: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ToolError wraps a tool-side failure. The engine never suppresses it or
// substitutes a default observation.
type ToolError struct {
	Tool string
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("engine: tool %q failed: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }
