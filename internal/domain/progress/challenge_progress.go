package progress

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChallengeProgress marks that a user has answered a challenge correctly at least once.
// Its existence alone distinguishes practice from a first attempt.
type ChallengeProgress struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_challenge_progress_user_challenge" json:"user_id"`
	ChallengeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_challenge_progress_user_challenge;index" json:"challenge_id"`
	Completed   bool      `gorm:"not null;column:completed" json:"completed"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (ChallengeProgress) TableName() string { return "challenge_progress" }

func (cp *ChallengeProgress) BeforeCreate(*gorm.DB) error {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	return nil
}

// AllCompleted reports whether rows is non-empty and every row is completed.
func AllCompleted(rows []*ChallengeProgress) bool {
	if len(rows) == 0 {
		return false
	}
	for _, r := range rows {
		if r == nil || !r.Completed {
			return false
		}
	}
	return true
}
