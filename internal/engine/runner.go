package engine

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
)

// Runner drives a task from its first step to a terminal one. Executor
// errors propagate to the caller untouched; the runner never retries and
// never catches a failed step.
type Runner struct {
	scheduler *Scheduler
}

func NewRunner(scheduler *Scheduler) *Runner {
	return &Runner{scheduler: scheduler}
}

// Chat processes one user request end to end: append the user turn to
// memory, create the task and its first step, then run steps until one
// reports it was the last. Non-termination is bounded by the executor's
// max iteration cap.
func (r *Runner) Chat(ctx context.Context, mem Memory, input string) (*Response, error) {
	err := mem.Put(ctx, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(input)},
	})
	if err != nil {
		return nil, fmt.Errorf("engine: writing memory: %w", err)
	}

	task := NewTask(input, mem)
	step := r.scheduler.InitializeStep(task)
	for {
		out, err := r.scheduler.RunStep(ctx, step, task)
		if err != nil {
			return nil, err
		}
		if out.IsLast {
			return out.Response, nil
		}
		step = out.NextSteps[0]
	}
}
