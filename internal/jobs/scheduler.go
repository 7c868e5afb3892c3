package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/yungbote/lingo-backend/internal/observability"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
)

type Scheduler struct {
	log       *logger.Logger
	registry  *Registry
	scheduler *gocron.Scheduler
	timeout   time.Duration
}

func NewScheduler(baseLog *logger.Logger, registry *Registry) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		log:       baseLog.With("component", "JobScheduler"),
		registry:  registry,
		scheduler: s,
		timeout:   time.Minute,
	}
}

// Start schedules every registered job and runs the scheduler in the background.
// Jobs stop being scheduled once ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	for _, j := range s.registry.All() {
		job := j
		if _, err := s.scheduler.Every(job.Every()).Name(job.Name()).Do(func() {
			s.RunOnce(ctx, job)
		}); err != nil {
			return fmt.Errorf("schedule %s: %w", job.Name(), err)
		}
		s.log.Info("Job scheduled", "job", job.Name(), "every", job.Every().String())
	}
	s.scheduler.StartAsync()
	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

func (s *Scheduler) Stop() {
	if s.scheduler.IsRunning() {
		s.scheduler.Stop()
	}
}

// RunOnce executes job with a timeout, recording duration and outcome. A panic
// is logged and counted as a failure.
func (s *Scheduler) RunOnce(ctx context.Context, job Job) (err error) {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Job panic", "job", job.Name(), "panic", r)
			err = errFromRecover(r)
		}
		status := "ok"
		if err != nil {
			status = "error"
			s.log.Warn("Job failed", "job", job.Name(), "error", err)
		}
		observability.Current().ObserveJob(job.Name(), status, time.Since(start))
	}()
	return job.Run(runCtx)
}

func errFromRecover(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", v)
}
