package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// EventType defines the category of the log event.
type EventType string

const (
	EventTypeStep       EventType = "step"
	EventTypeReasoning  EventType = "reasoning"
	EventTypeToolCall   EventType = "tool_call"
	EventTypeToolResult EventType = "tool_result"
	EventTypeLLM        EventType = "llm"
	EventTypePolicy     EventType = "policy"
	EventTypeError      EventType = "error"
)

// Event represents a structured log entry.
type Event struct {
	Type      EventType `json:"type"`
	TaskID    string    `json:"task_id,omitempty"`
	StepID    string    `json:"step_id,omitempty"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Logger emits structured JSON events, one per line. A nil *Logger is
// valid and silently discards everything.
type Logger struct {
	mu  sync.Mutex
	out io.Writer
}

func NewLogger() *Logger {
	return &Logger{out: os.Stdout}
}

func NewLoggerTo(w io.Writer) *Logger {
	return &Logger{out: w}
}

func (l *Logger) Log(evt Event) {
	if l == nil {
		return
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	data, err := json.Marshal(evt)
	if err != nil {
		l.mu.Lock()
		fmt.Fprintf(l.out, "{\"error\": \"failed to marshal event: %v\"}\n", err)
		l.mu.Unlock()
		return
	}
	l.mu.Lock()
	l.out.Write(append(data, '\n'))
	l.mu.Unlock()
}

// Helper methods for common events

func (l *Logger) LogStep(taskID, stepID string, isLast bool) {
	l.Log(Event{
		Type:   EventTypeStep,
		TaskID: taskID,
		StepID: stepID,
		Data:   map[string]any{"is_last": isLast},
	})
}

func (l *Logger) LogReasoning(taskID, stepID, content string) {
	l.Log(Event{
		Type:   EventTypeReasoning,
		TaskID: taskID,
		StepID: stepID,
		Data:   map[string]string{"content": content},
	})
}

func (l *Logger) LogToolCall(taskID, stepID, tool string, args map[string]any) {
	l.Log(Event{
		Type:   EventTypeToolCall,
		TaskID: taskID,
		StepID: stepID,
		Data: map[string]any{
			"tool": tool,
			"args": args,
		},
	})
}

func (l *Logger) LogToolResult(taskID, stepID, tool, result string) {
	l.Log(Event{
		Type:   EventTypeToolResult,
		TaskID: taskID,
		StepID: stepID,
		Data: map[string]string{
			"tool":   tool,
			"result": result,
		},
	})
}

func (l *Logger) LogLLM(taskID, stepID string, response string) {
	l.Log(Event{
		Type:   EventTypeLLM,
		TaskID: taskID,
		StepID: stepID,
		Data:   map[string]string{"response": response},
	})
}

func (l *Logger) LogPolicy(taskID, stepID, tool, effect, reason string) {
	l.Log(Event{
		Type:   EventTypePolicy,
		TaskID: taskID,
		StepID: stepID,
		Data: map[string]string{
			"tool":   tool,
			"effect": effect,
			"reason": reason,
		},
	})
}

// Error logs a formatted error event. It also satisfies the panic logger
// used by background goroutines.
func (l *Logger) Error(format string, args ...any) {
	l.Log(Event{
		Type: EventTypeError,
		Data: map[string]string{"message": fmt.Sprintf(format, args...)},
	})
}
