package memory

import (
	"context"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// Buffer is an in-process conversational log, suitable for tests and
// one-shot CLI sessions. Get returns a copy so callers can never mutate
// the log through the returned slice.
type Buffer struct {
	mu   sync.Mutex
	msgs []llms.MessageContent
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Get(ctx context.Context) ([]llms.MessageContent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]llms.MessageContent, len(b.msgs))
	copy(out, b.msgs)
	return out, nil
}

func (b *Buffer) Put(ctx context.Context, msg llms.MessageContent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, msg)
	return nil
}
