package aggregates

import (
	"context"
	"testing"
	"time"

	domainagg "github.com/yungbote/lingo-backend/internal/domain/aggregates"
	"github.com/yungbote/lingo-backend/internal/platform/dbctx"
)

func TestExecuteWriteReportsStatusAndCounters(t *testing.T) {
	cases := []struct {
		name          string
		op            string
		err           error
		wantStatus    string
		wantConflicts int
		wantRetries   int
	}{
		{"success", "Learning.Progress.ApplyCorrectAnswer", nil, "success", 0, 0},
		{"invariant", "Learning.Progress.RefillHearts", InvariantError("hearts above max"), string(domainagg.CodeInvariantViolation), 0, 0},
		{"conflict", "Learning.Progress.ApplyIncorrectAnswer", ConflictError("stale version"), string(domainagg.CodeConflict), 1, 0},
		{"retryable", "Learning.Progress.SelectCourse", RetryableError("lock timeout"), string(domainagg.CodeRetryable), 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hooks := &spyHooks{}
			err := executeWrite(context.Background(), BaseDeps{Runner: spyTxRunner{}, Hooks: hooks}, tc.op,
				func(_ dbctx.Context) error { return tc.err })
			if (err == nil) != (tc.err == nil) {
				t.Fatalf("err: want=%v got=%v", tc.err, err)
			}
			if len(hooks.Operations) != 1 {
				t.Fatalf("operations: want=1 got=%d", len(hooks.Operations))
			}
			if got := hooks.Operations[0]; got.Status != tc.wantStatus || got.Name != tc.op {
				t.Fatalf("operation: want=%s/%s got=%s/%s", tc.op, tc.wantStatus, got.Name, got.Status)
			}
			if len(hooks.Conflicts) != tc.wantConflicts {
				t.Fatalf("conflicts: want=%d got=%d", tc.wantConflicts, len(hooks.Conflicts))
			}
			if len(hooks.Retries) != tc.wantRetries {
				t.Fatalf("retries: want=%d got=%d", tc.wantRetries, len(hooks.Retries))
			}
		})
	}
}

func TestAggregateErrorStatus(t *testing.T) {
	for err, want := range map[error]string{
		InvariantError("x"):      string(domainagg.CodeInvariantViolation),
		ConflictError("x"):       string(domainagg.CodeConflict),
		RetryableError("x"):      string(domainagg.CodeRetryable),
		context.DeadlineExceeded: string(domainagg.CodeRetryable),
	} {
		if got := aggregateErrorStatus(err); got != want {
			t.Fatalf("aggregateErrorStatus(%v): want=%s got=%s", err, want, got)
		}
	}
	if got := aggregateErrorStatus(nil); got != "success" {
		t.Fatalf("nil status: want=success got=%s", got)
	}
}

type spyTxRunner struct{}

func (spyTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(dbctx.Context{Ctx: ctx})
}

type spyHooks struct {
	Operations []spyOperation
	Conflicts  []string
	Retries    []string
}

type spyOperation struct {
	Name   string
	Status string
}

func (h *spyHooks) ObserveOperation(name, status string, _ time.Duration) {
	h.Operations = append(h.Operations, spyOperation{Name: name, Status: status})
}

func (h *spyHooks) IncConflict(name string) {
	h.Conflicts = append(h.Conflicts, name)
}

func (h *spyHooks) IncRetry(name string) {
	h.Retries = append(h.Retries, name)
}

func TestExecuteWriteWithRetryStopsOnSuccess(t *testing.T) {
	hooks := &spyHooks{}
	attempts := 0
	err := executeWriteWithRetry(context.Background(), BaseDeps{
		Runner: spyTxRunner{},
		Hooks:  hooks,
	}, "aggregate.test.retry_success", func(_ dbctx.Context) error {
		attempts++
		if attempts < 2 {
			return ConflictError("stale version")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("executeWriteWithRetry: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("attempts: want=2 got=%d", attempts)
	}
	if len(hooks.Conflicts) != 1 {
		t.Fatalf("conflicts: want=1 got=%d", len(hooks.Conflicts))
	}
}

func TestExecuteWriteWithRetryGivesUp(t *testing.T) {
	attempts := 0
	err := executeWriteWithRetry(context.Background(), BaseDeps{
		Runner:      spyTxRunner{},
		MaxAttempts: 3,
	}, "aggregate.test.retry_exhausted", func(_ dbctx.Context) error {
		attempts++
		return ConflictError("stale version")
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got=%v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts: want=3 got=%d", attempts)
	}
}

func TestExecuteWriteWithRetrySkipsPermanentErrors(t *testing.T) {
	attempts := 0
	err := executeWriteWithRetry(context.Background(), BaseDeps{
		Runner: spyTxRunner{},
	}, "aggregate.test.not_found", func(_ dbctx.Context) error {
		attempts++
		return domainagg.NotFound("op", "missing")
	})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found code, got=%v", err)
	}
	if attempts != 1 {
		t.Fatalf("attempts: want=1 got=%d", attempts)
	}
}
