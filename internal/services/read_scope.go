package services

import (
	"sync"
)

// ReadScope memoizes loads for the lifetime of one request. It is safe for the
// concurrent readers a single request fans out to. A nil scope disables memoization.
type ReadScope struct {
	mu      sync.Mutex
	entries map[string]*scopeEntry
}

type scopeEntry struct {
	done chan struct{}
	val  any
	err  error
}

func NewReadScope() *ReadScope {
	return &ReadScope{entries: map[string]*scopeEntry{}}
}

// scoped runs fn at most once per key; concurrent callers for the same key wait
// for the first one.
func scoped[T any](s *ReadScope, key string, fn func() (T, error)) (T, error) {
	if s == nil {
		return fn()
	}
	s.mu.Lock()
	if e, ok := s.entries[key]; ok {
		s.mu.Unlock()
		<-e.done
		v, _ := e.val.(T)
		return v, e.err
	}
	e := &scopeEntry{done: make(chan struct{})}
	s.entries[key] = e
	s.mu.Unlock()

	v, err := fn()
	e.val, e.err = v, err
	close(e.done)
	return v, err
}
