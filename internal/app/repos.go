package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/lingo-backend/internal/data/repos"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
)

type Repos struct {
	Course            repos.CourseRepo
	Unit              repos.UnitRepo
	Lesson            repos.LessonRepo
	Challenge         repos.ChallengeRepo
	UserProgress      repos.UserProgressRepo
	ChallengeProgress repos.ChallengeProgressRepo
	UserSubscription  repos.UserSubscriptionRepo
	BillingEvent      repos.BillingEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Course:            repos.NewCourseRepo(db, log),
		Unit:              repos.NewUnitRepo(db, log),
		Lesson:            repos.NewLessonRepo(db, log),
		Challenge:         repos.NewChallengeRepo(db, log),
		UserProgress:      repos.NewUserProgressRepo(db, log),
		ChallengeProgress: repos.NewChallengeProgressRepo(db, log),
		UserSubscription:  repos.NewUserSubscriptionRepo(db, log),
		BillingEvent:      repos.NewBillingEventRepo(db, log),
	}
}
