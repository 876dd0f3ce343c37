package tools

import (
	"context"
)

// Tool defines the interface for all agent capabilities.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any // JSON Schema for the tool's inputs
	Call(ctx context.Context, args map[string]any) (Output, error)
}

// Output is the result of one tool invocation. Its string form is what
// the engine feeds back into the reasoning trace as an observation.
type Output struct {
	ToolName string
	Content  string
	RawInput map[string]any
}

func (o Output) String() string {
	return o.Content
}

// Registry indexes a resolved tool set by name. Duplicate names keep the
// first registration.
type Registry struct {
	tools map[string]Tool
	order []Tool
}

func NewRegistry(ts []Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(ts))}
	for _, t := range ts {
		if _, dup := r.tools[t.Name()]; dup {
			continue
		}
		r.tools[t.Name()] = t
		r.order = append(r.order, t)
	}
	return r
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// All returns the registered tools in registration order.
func (r *Registry) All() []Tool {
	return r.order
}
