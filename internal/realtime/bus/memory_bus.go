package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/yungbote/lingo-backend/internal/realtime"
)

// memoryBus delivers synchronously inside Publish, so a single-instance
// deployment observes invalidations before the publishing request returns.
type memoryBus struct {
	mu       sync.RWMutex
	handlers map[int]func(realtime.Message)
	next     int
	closed   bool
}

func NewMemoryBus() Bus {
	return &memoryBus{handlers: map[int]func(realtime.Message){}}
}

func (b *memoryBus) Publish(_ context.Context, msg realtime.Message) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return fmt.Errorf("memory bus closed")
	}
	handlers := make([]func(realtime.Message), 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(msg)
	}
	return nil
}

func (b *memoryBus) StartForwarder(ctx context.Context, onMsg func(m realtime.Message)) error {
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return fmt.Errorf("memory bus closed")
	}
	id := b.next
	b.next++
	b.handlers[id] = onMsg
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}()
	return nil
}

func (b *memoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.handlers = map[int]func(realtime.Message){}
	return nil
}
