package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Job is a periodic maintenance task.
type Job interface {
	Name() string
	Every() time.Duration
	Run(ctx context.Context) error
}

type Registry struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

func NewRegistry() *Registry {
	return &Registry{jobs: map[string]Job{}}
}

func (r *Registry) Register(j Job) error {
	if j == nil || j.Name() == "" {
		return fmt.Errorf("job name required")
	}
	if j.Every() <= 0 {
		return fmt.Errorf("job %s: interval must be positive", j.Name())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.jobs[j.Name()]; exists {
		return fmt.Errorf("job %s already registered", j.Name())
	}
	r.jobs[j.Name()] = j
	return nil
}

func (r *Registry) Get(name string) (Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jobs[name]
	return j, ok
}

// All returns the registered jobs sorted by name.
func (r *Registry) All() []Job {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Name() < out[k].Name() })
	return out
}
