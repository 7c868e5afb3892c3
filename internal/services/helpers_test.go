package services

import (
	"context"
	"testing"

	"github.com/yungbote/lingo-backend/internal/data/repos"
	"github.com/yungbote/lingo-backend/internal/data/repos/testutil"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/realtime"
	"gorm.io/gorm"
)

type testEnv struct {
	db  *gorm.DB
	log *logger.Logger

	courses           repos.CourseRepo
	units             repos.UnitRepo
	lessons           repos.LessonRepo
	challenges        repos.ChallengeRepo
	progress          repos.UserProgressRepo
	challengeProgress repos.ChallengeProgressRepo
	subs              repos.UserSubscriptionRepo
	events            repos.BillingEventRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return &testEnv{
		db:                db,
		log:               log,
		courses:           repos.NewCourseRepo(db, log),
		units:             repos.NewUnitRepo(db, log),
		lessons:           repos.NewLessonRepo(db, log),
		challenges:        repos.NewChallengeRepo(db, log),
		progress:          repos.NewUserProgressRepo(db, log),
		challengeProgress: repos.NewChallengeProgressRepo(db, log),
		subs:              repos.NewUserSubscriptionRepo(db, log),
		events:            repos.NewBillingEventRepo(db, log),
	}
}

func (e *testEnv) resolver() ProgressResolver {
	return NewProgressResolver(e.log, e.progress, e.challengeProgress, e.units, e.lessons)
}

type recordingPublisher struct {
	progress      []realtime.ProgressChanged
	subscriptions []realtime.ProgressChanged
}

func (p *recordingPublisher) ProgressChanged(_ context.Context, pc realtime.ProgressChanged) {
	p.progress = append(p.progress, pc)
}

func (p *recordingPublisher) SubscriptionChanged(_ context.Context, pc realtime.ProgressChanged) {
	p.subscriptions = append(p.subscriptions, pc)
}
