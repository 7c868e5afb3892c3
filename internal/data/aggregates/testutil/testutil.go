package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/yungbote/lingo-backend/internal/data/aggregates"
	"github.com/yungbote/lingo-backend/internal/platform/dbctx"
)

// HooksRecorder captures aggregate hook signals in tests.
type HooksRecorder struct {
	mu sync.Mutex

	Operations []OperationEvent
	Conflicts  []string
	Retries    []string
}

type OperationEvent struct {
	Name     string
	Status   string
	Duration time.Duration
}

var _ aggregates.Hooks = (*HooksRecorder)(nil)

func (h *HooksRecorder) ObserveOperation(name, status string, dur time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Operations = append(h.Operations, OperationEvent{Name: name, Status: status, Duration: dur})
}

func (h *HooksRecorder) IncConflict(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Conflicts = append(h.Conflicts, name)
}

func (h *HooksRecorder) IncRetry(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Retries = append(h.Retries, name)
}

// Statuses lists the recorded operation statuses in call order.
func (h *HooksRecorder) Statuses() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.Operations))
	for _, op := range h.Operations {
		out = append(out, op.Status)
	}
	return out
}

// CountingTxRunner wraps a real runner and counts transactions, optionally
// failing the first FailTimes of them with Err before the body runs.
type CountingTxRunner struct {
	Inner     aggregates.TxRunner
	FailTimes int
	Err       error

	mu    sync.Mutex
	calls int
}

var _ aggregates.TxRunner = (*CountingTxRunner)(nil)

func (r *CountingTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.calls++
	fail := r.calls <= r.FailTimes
	r.mu.Unlock()

	if fail && r.Err != nil {
		return r.Err
	}
	if r.Inner == nil {
		return fn(dbctx.Context{Ctx: ctx})
	}
	return r.Inner.InTx(ctx, fn)
}

func (r *CountingTxRunner) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
