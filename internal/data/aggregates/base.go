package aggregates

import (
	"context"
	"strings"
	"time"

	domainagg "github.com/yungbote/lingo-backend/internal/domain/aggregates"
	"github.com/yungbote/lingo-backend/internal/platform/dbctx"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"gorm.io/gorm"
)

const defaultMaxAttempts = 3

type BaseDeps struct {
	DB       *gorm.DB
	Log      *logger.Logger
	Runner   TxRunner
	Hooks    Hooks
	CASGuard CASGuard
	// Clock is read once per attempt; tests pin it.
	Clock func() time.Time
	// MaxAttempts bounds retries of conflicting or retryable writes.
	MaxAttempts int
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.CASGuard.db == nil {
		d.CASGuard = NewCASGuard(d.DB)
	}
	if d.Clock == nil {
		d.Clock = func() time.Time { return time.Now().UTC() }
	}
	if d.MaxAttempts <= 0 {
		d.MaxAttempts = defaultMaxAttempts
	}
	return d
}

func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.withDefaults()
	op = normalizeOp(op)
	err := deps.Runner.InTx(ctx, fn)
	mapped := MapError(op, err)

	status := "success"
	if mapped != nil {
		status = aggregateErrorStatus(mapped)
		if domainagg.IsCode(mapped, domainagg.CodeConflict) {
			deps.Hooks.IncConflict(op)
		}
		if domainagg.IsCode(mapped, domainagg.CodeRetryable) {
			deps.Hooks.IncRetry(op)
		}
	}
	deps.Hooks.ObserveOperation(op, status, time.Since(start))
	return mapped
}

// executeWriteWithRetry re-runs the whole transaction when it fails with a
// conflict or retryable code, up to deps.MaxAttempts. The last error is returned.
func executeWriteWithRetry(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	deps = deps.withDefaults()
	op = normalizeOp(op)
	var err error
	for attempt := 1; attempt <= deps.MaxAttempts; attempt++ {
		err = executeWrite(ctx, deps, op, fn)
		if err == nil || !isRetryableWrite(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		if deps.Log != nil && attempt < deps.MaxAttempts {
			deps.Log.Debug("retrying aggregate write", "op", op, "attempt", attempt, "error", err)
		}
	}
	return err
}

func isRetryableWrite(err error) bool {
	return domainagg.IsCode(err, domainagg.CodeConflict) || domainagg.IsCode(err, domainagg.CodeRetryable)
}

func normalizeOp(op string) string {
	op = strings.TrimSpace(op)
	if op == "" {
		return "aggregate.write"
	}
	return op
}

func aggregateErrorStatus(err error) string {
	if err == nil {
		return "success"
	}
	code := strings.TrimSpace(string(domainagg.CodeOf(err)))
	if code == "" {
		code = strings.TrimSpace(string(domainagg.CodeOf(MapError("aggregate.status", err))))
	}
	if code == "" {
		return "failure"
	}
	return code
}
