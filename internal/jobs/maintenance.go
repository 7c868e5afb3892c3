package jobs

import (
	"context"
	"time"

	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/services"
)

// LeaderboardWarm keeps the cached top ten fresh between writes.
type LeaderboardWarm struct {
	Leaderboard services.LeaderboardService
	Interval    time.Duration
}

func (j *LeaderboardWarm) Name() string         { return "leaderboard_warm" }
func (j *LeaderboardWarm) Every() time.Duration { return j.Interval }
func (j *LeaderboardWarm) Run(ctx context.Context) error {
	return j.Leaderboard.Warm(ctx)
}

// BillingEventPurge drops processed webhook records past retention.
type BillingEventPurge struct {
	Billing   services.BillingService
	Log       *logger.Logger
	Retention time.Duration
	Interval  time.Duration
}

func (j *BillingEventPurge) Name() string         { return "billing_event_purge" }
func (j *BillingEventPurge) Every() time.Duration { return j.Interval }
func (j *BillingEventPurge) Run(ctx context.Context) error {
	n, err := j.Billing.PurgeEvents(ctx, j.Retention)
	if err != nil {
		return err
	}
	if n > 0 && j.Log != nil {
		j.Log.Info("Purged billing events", "count", n, "retention", j.Retention.String())
	}
	return nil
}
