package engine

import (
	"context"

	"github.com/google/uuid"
)

// Scheduler owns the task and step lifecycle. It is the sole authority
// for creating steps; the executor never fabricates a step id beyond the
// single follow-up it proposes. It owns no branching logic: the run
// methods delegate to the StepExecutor and return its output unchanged.
type Scheduler struct {
	executor *StepExecutor
}

func NewScheduler(executor *StepExecutor) *Scheduler {
	return &Scheduler{executor: executor}
}

// InitializeStep creates the task's first step with fresh, empty shared
// state. Every follow-up step carries this same state instance.
func (s *Scheduler) InitializeStep(task *Task) *TaskStep {
	return &TaskStep{
		ID:     uuid.NewString(),
		TaskID: task.ID,
		Input:  task.Input,
		Memory: task.Memory,
		State:  &StepState{},
	}
}

func (s *Scheduler) RunStep(ctx context.Context, step *TaskStep, task *Task) (*StepOutput, error) {
	return s.executor.RunStep(ctx, step, task)
}

func (s *Scheduler) RunStepAsync(ctx context.Context, step *TaskStep, task *Task) <-chan StepResult {
	return s.executor.RunStepAsync(ctx, step, task)
}

func (s *Scheduler) StreamStep(ctx context.Context, step *TaskStep, task *Task) (*StepOutput, error) {
	return s.executor.StreamStep(ctx, step, task)
}
