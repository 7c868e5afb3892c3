package domain

import (
	"github.com/yungbote/lingo-backend/internal/domain/billing"
	"github.com/yungbote/lingo-backend/internal/domain/learning"
	"github.com/yungbote/lingo-backend/internal/domain/progress"
)

type Course = learning.Course
type Unit = learning.Unit
type Lesson = learning.Lesson
type Challenge = learning.Challenge
type ChallengeOption = learning.ChallengeOption
type ChallengeType = learning.ChallengeType

const (
	ChallengeTypeSelect = learning.ChallengeTypeSelect
	ChallengeTypeAssist = learning.ChallengeTypeAssist
)

type UserProgress = progress.UserProgress
type ChallengeProgress = progress.ChallengeProgress
type Rules = progress.Rules

const (
	DefaultUserName     = progress.DefaultUserName
	DefaultUserImageSrc = progress.DefaultUserImageSrc
)

type UserSubscription = billing.UserSubscription
type BillingEvent = billing.BillingEvent

const ActiveGracePeriod = billing.ActiveGracePeriod

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&Course{},
		&Unit{},
		&Lesson{},
		&Challenge{},
		&ChallengeOption{},
		&UserProgress{},
		&ChallengeProgress{},
		&UserSubscription{},
		&BillingEvent{},
	}
}
