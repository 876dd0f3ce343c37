package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"

	"github.com/rahul/relay/internal/reasoning"
	"github.com/rahul/relay/internal/tools"
)

// Memory is the conversational append/read log a caller supplies per task.
type Memory interface {
	Get(ctx context.Context) ([]llms.MessageContent, error)
	Put(ctx context.Context, msg llms.MessageContent) error
}

// StepState is the mutable reasoning state shared by every step of one
// task. Each follow-up step carries the same instance forward by
// reference, never a copy, so later steps observe earlier appends. Both
// lists are append-only for the task's whole life.
type StepState struct {
	Sources   []tools.Output
	Reasoning []reasoning.Step
}

// Task is one end-to-end user request, spanning one or more steps. The
// caller owns it for its entire lifetime and discards it wholesale on
// completion.
type Task struct {
	ID     string
	Input  string
	Memory Memory
}

func NewTask(input string, mem Memory) *Task {
	return &Task{
		ID:     uuid.NewString(),
		Input:  input,
		Memory: mem,
	}
}

// TaskStep is one iteration of the prompt -> model -> parse -> act cycle.
type TaskStep struct {
	ID     string
	TaskID string
	// Input overrides the task input; unused after the first step.
	Input  string
	Memory Memory
	State  *StepState
}

// Next returns the follow-up step with a fresh id, carrying the same
// state reference and memory handle.
func (s *TaskStep) Next() *TaskStep {
	return &TaskStep{
		ID:     uuid.NewString(),
		TaskID: s.TaskID,
		Memory: s.Memory,
		State:  s.State,
	}
}

// StepOutput is the result of running one step. NextSteps is empty
// exactly when IsLast is true; otherwise it holds the single follow-up.
type StepOutput struct {
	Response  *Response
	Step      *TaskStep
	IsLast    bool
	NextSteps []*TaskStep
}

// StepResult carries the outcome of an asynchronous step run.
type StepResult struct {
	Output *StepOutput
	Err    error
}
