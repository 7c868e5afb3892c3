package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/lingo-backend/internal/platform/logger"
)

type fakeJob struct {
	name  string
	every time.Duration
	runs  int
	err   error
	panic bool
}

func (f *fakeJob) Name() string         { return f.name }
func (f *fakeJob) Every() time.Duration { return f.every }
func (f *fakeJob) Run(context.Context) error {
	f.runs++
	if f.panic {
		panic("boom")
	}
	return f.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestRegistryRejectsDuplicatesAndBadIntervals(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeJob{name: "a", every: time.Second}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(&fakeJob{name: "a", every: time.Second}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := r.Register(&fakeJob{name: "b"}); err == nil {
		t.Fatalf("expected interval error")
	}
	if err := r.Register(&fakeJob{name: "0", every: time.Minute}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	all := r.All()
	if len(all) != 2 || all[0].Name() != "0" || all[1].Name() != "a" {
		t.Fatalf("All: unexpected order %v", all)
	}
}

func TestRunOnceRecoversPanic(t *testing.T) {
	s := NewScheduler(testLogger(t), NewRegistry())
	job := &fakeJob{name: "p", every: time.Second, panic: true}
	if err := s.RunOnce(context.Background(), job); err == nil {
		t.Fatalf("expected error from panicking job")
	}
	if job.runs != 1 {
		t.Fatalf("runs: want=1 got=%d", job.runs)
	}
}

func TestRunOnceReturnsJobError(t *testing.T) {
	s := NewScheduler(testLogger(t), NewRegistry())
	want := errors.New("nope")
	if err := s.RunOnce(context.Background(), &fakeJob{name: "e", every: time.Second, err: want}); !errors.Is(err, want) {
		t.Fatalf("RunOnce: want=%v got=%v", want, err)
	}
}

func TestRunOnceSkipsCancelledContext(t *testing.T) {
	s := NewScheduler(testLogger(t), NewRegistry())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	job := &fakeJob{name: "c", every: time.Second}
	if err := s.RunOnce(ctx, job); err == nil || job.runs != 0 {
		t.Fatalf("expected skip: err=%v runs=%d", err, job.runs)
	}
}
