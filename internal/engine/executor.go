package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/rahul/relay/internal/async"
	"github.com/rahul/relay/internal/governance"
	"github.com/rahul/relay/internal/observability"
	"github.com/rahul/relay/internal/reasoning"
	"github.com/rahul/relay/internal/tools"
)

// DefaultMaxIterations caps the reasoning trace length per task.
const DefaultMaxIterations = 10

// Parser turns one model message into a reasoning step.
type Parser interface {
	Parse(text string, streaming bool) (reasoning.Step, error)
}

// Formatter renders tools, history and the current reasoning trace into a
// model-ready message sequence.
type Formatter interface {
	Format(ts []tools.Tool, history []llms.MessageContent, current []reasoning.Step) []llms.MessageContent
}

// ExecutorConfig captures the collaborators a StepExecutor needs. Model
// and Tools are required; everything else has a default.
type ExecutorConfig struct {
	Model         llms.Model
	Tools         *tools.Source
	Formatter     Formatter
	Parser        Parser
	Policy        governance.PolicyEngine // optional tool-call gate
	Logger        *observability.Logger   // optional, nil discards events
	MaxIterations int
	CallOptions   []llms.CallOption
}

// StepExecutor runs one reasoning step at a time: render the prompt,
// invoke the model, parse the output, invoke at most one tool, update the
// shared trace, and decide whether the task is finished. It never retries
// and never substitutes a default answer for a failed step.
type StepExecutor struct {
	model         llms.Model
	source        *tools.Source
	formatter     Formatter
	parser        Parser
	policy        governance.PolicyEngine
	logger        *observability.Logger
	maxIterations int
	callOptions   []llms.CallOption
}

func NewStepExecutor(cfg ExecutorConfig) (*StepExecutor, error) {
	if cfg.Model == nil {
		return nil, errors.New("engine: model is required")
	}
	source := cfg.Tools
	if source == nil {
		source, _ = tools.NewSource(nil, nil)
	}
	formatter := cfg.Formatter
	if formatter == nil {
		formatter = reasoning.NewFormatter()
	}
	parser := cfg.Parser
	if parser == nil {
		parser = reasoning.NewParser()
	}
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &StepExecutor{
		model:         cfg.Model,
		source:        source,
		formatter:     formatter,
		parser:        parser,
		policy:        cfg.Policy,
		logger:        cfg.Logger,
		maxIterations: maxIterations,
		callOptions:   cfg.CallOptions,
	}, nil
}

// RunStep executes one step of the task, blocking the calling goroutine.
// ctx is honored at the two suspension points: the model call and the
// tool call. A cancellation that lands inside either call leaves the
// trace exactly as it was before that call, with no partial append.
func (e *StepExecutor) RunStep(ctx context.Context, step *TaskStep, task *Task) (*StepOutput, error) {
	resolved, err := e.source.Resolve(ctx, task.Input)
	if err != nil {
		return nil, fmt.Errorf("engine: resolving tools: %w", err)
	}
	registry := tools.NewRegistry(resolved)

	history, err := step.Memory.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine: reading memory: %w", err)
	}

	messages := e.formatter.Format(registry.All(), history, step.State.Reasoning)

	chat, err := e.model.GenerateContent(ctx, messages, e.callOptions...)
	if err != nil {
		return nil, fmt.Errorf("engine: model call: %w", err)
	}
	text, err := messageText(chat)
	if err != nil {
		return nil, err
	}
	e.logger.LogLLM(task.ID, step.ID, text)

	parsed, err := e.parser.Parse(text, false)
	if err != nil {
		return nil, &ParseError{Output: text, Err: err}
	}
	e.logger.LogReasoning(task.ID, step.ID, parsed.Content())

	done := parsed.IsTerminal()
	if !done {
		if _, ok := parsed.(reasoning.ActionStep); !ok {
			return nil, fmt.Errorf("%w, got %T", ErrUnexpectedStepType, parsed)
		}
	}

	step.State.Reasoning = append(step.State.Reasoning, parsed)

	if !done {
		action := parsed.(reasoning.ActionStep)
		if err := e.act(ctx, step, task, registry, action); err != nil {
			return nil, err
		}
	}

	response, err := AssembleResponse(step.State.Reasoning, step.State.Sources, e.maxIterations)
	if err != nil {
		return nil, err
	}

	if done {
		err := step.Memory.Put(ctx, llms.MessageContent{
			Role:  llms.ChatMessageTypeAI,
			Parts: []llms.ContentPart{llms.TextPart(response.Text)},
		})
		if err != nil {
			return nil, fmt.Errorf("engine: writing memory: %w", err)
		}
		e.logger.LogStep(task.ID, step.ID, true)
		return &StepOutput{Response: response, Step: step, IsLast: true}, nil
	}

	e.logger.LogStep(task.ID, step.ID, false)
	return &StepOutput{
		Response:  response,
		Step:      step,
		IsLast:    false,
		NextSteps: []*TaskStep{step.Next()},
	}, nil
}

// act resolves and invokes the single tool the action names, appending
// its output to sources and an observation to the trace. On any failure
// the action step stays in the trace and nothing else is appended.
func (e *StepExecutor) act(ctx context.Context, step *TaskStep, task *Task, registry *tools.Registry, action reasoning.ActionStep) error {
	tool, ok := registry.Get(action.Action)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTool, action.Action)
	}

	if e.policy != nil {
		result, err := e.policy.Evaluate(ctx, governance.Request{
			Tool:      action.Action,
			Arguments: action.ActionInput,
			TaskID:    task.ID,
		})
		if err != nil {
			return &ToolError{Tool: action.Action, Err: err}
		}
		e.logger.LogPolicy(task.ID, step.ID, action.Action, string(result.Effect), result.Reason)
		if result.Effect == governance.EffectDeny {
			return &ToolError{Tool: action.Action, Err: errors.New(result.Reason)}
		}
	}

	e.logger.LogToolCall(task.ID, step.ID, action.Action, action.ActionInput)
	output, err := tool.Call(ctx, action.ActionInput)
	if err != nil {
		return &ToolError{Tool: action.Action, Err: err}
	}
	e.logger.LogToolResult(task.ID, step.ID, action.Action, output.String())

	step.State.Sources = append(step.State.Sources, output)
	step.State.Reasoning = append(step.State.Reasoning, reasoning.ObservationStep{
		Observation: output.String(),
	})
	return nil
}

// RunStepAsync runs the step on a panic-guarded goroutine and delivers
// exactly one result on the returned channel. Trace mutations are
// identical to RunStep given identical model and tool responses.
func (e *StepExecutor) RunStepAsync(ctx context.Context, step *TaskStep, task *Task) <-chan StepResult {
	ch := make(chan StepResult, 1)
	async.Go(e.logger, "engine.run_step", func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- StepResult{Err: fmt.Errorf("engine: step panicked: %v", r)}
			}
		}()
		out, err := e.RunStep(ctx, step, task)
		ch <- StepResult{Output: out, Err: err}
	})
	return ch
}

// StreamStep is declared for contract parity but deliberately
// unimplemented; callers must not mistake silence for an empty answer.
func (e *StepExecutor) StreamStep(ctx context.Context, step *TaskStep, task *Task) (*StepOutput, error) {
	return nil, ErrStreamingNotSupported
}

// StreamStepAsync is the asynchronous streaming entry point; like
// StreamStep it always fails.
func (e *StepExecutor) StreamStepAsync(ctx context.Context, step *TaskStep, task *Task) <-chan StepResult {
	ch := make(chan StepResult, 1)
	ch <- StepResult{Err: ErrStreamingNotSupported}
	return ch
}

// messageText extracts the text content of the first model choice.
func messageText(resp *llms.ContentResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyModelOutput
	}
	content := resp.Choices[0].Content
	if content == "" {
		return "", ErrEmptyModelOutput
	}
	return content, nil
}
