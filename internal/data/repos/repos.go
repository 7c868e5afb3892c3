package repos

import (
	"github.com/yungbote/lingo-backend/internal/data/repos/billing"
	"github.com/yungbote/lingo-backend/internal/data/repos/learning"
	"github.com/yungbote/lingo-backend/internal/data/repos/progress"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type CourseRepo = learning.CourseRepo
type UnitRepo = learning.UnitRepo
type LessonRepo = learning.LessonRepo
type ChallengeRepo = learning.ChallengeRepo

type UserProgressRepo = progress.UserProgressRepo
type ChallengeProgressRepo = progress.ChallengeProgressRepo

type UserSubscriptionRepo = billing.UserSubscriptionRepo
type BillingEventRepo = billing.BillingEventRepo

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return learning.NewCourseRepo(db, baseLog)
}
func NewUnitRepo(db *gorm.DB, baseLog *logger.Logger) UnitRepo {
	return learning.NewUnitRepo(db, baseLog)
}
func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return learning.NewLessonRepo(db, baseLog)
}
func NewChallengeRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeRepo {
	return learning.NewChallengeRepo(db, baseLog)
}

func NewUserProgressRepo(db *gorm.DB, baseLog *logger.Logger) UserProgressRepo {
	return progress.NewUserProgressRepo(db, baseLog)
}
func NewChallengeProgressRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeProgressRepo {
	return progress.NewChallengeProgressRepo(db, baseLog)
}

func NewUserSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) UserSubscriptionRepo {
	return billing.NewUserSubscriptionRepo(db, baseLog)
}
func NewBillingEventRepo(db *gorm.DB, baseLog *logger.Logger) BillingEventRepo {
	return billing.NewBillingEventRepo(db, baseLog)
}
