package tools

import (
	"context"
	"errors"
)

// ErrAmbiguousSource is returned when a Source is constructed with both a
// fixed tool list and a retriever.
var ErrAmbiguousSource = errors.New("tools: cannot specify both a static tool list and a retriever")

// Retriever selects the tools relevant to a task input.
type Retriever func(ctx context.Context, input string) ([]Tool, error)

// Source resolves the callable tool set for a task input. Exactly one of
// two modes is chosen at construction: a fixed static list, or retrieval
// keyed by the input text. With neither, Resolve yields an empty set and
// the agent can only answer directly.
type Source struct {
	static    []Tool
	retriever Retriever
}

func NewSource(static []Tool, retriever Retriever) (*Source, error) {
	if len(static) > 0 && retriever != nil {
		return nil, ErrAmbiguousSource
	}
	return &Source{static: static, retriever: retriever}, nil
}

func (s *Source) Resolve(ctx context.Context, input string) ([]Tool, error) {
	if s.retriever != nil {
		return s.retriever(ctx, input)
	}
	return s.static, nil
}
