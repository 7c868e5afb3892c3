package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChallengeType string

const (
	ChallengeTypeSelect ChallengeType = "SELECT"
	ChallengeTypeAssist ChallengeType = "ASSIST"
)

func (t ChallengeType) Valid() bool {
	return t == ChallengeTypeSelect || t == ChallengeTypeAssist
}

type Challenge struct {
	ID       uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID uuid.UUID     `gorm:"type:uuid;not null;index:idx_challenge_lesson_order" json:"lesson_id"`
	Type     ChallengeType `gorm:"type:varchar(16);not null;column:type" json:"type"`
	Question string        `gorm:"not null;column:question" json:"question"`
	Order    int           `gorm:"not null;column:sort_order;index:idx_challenge_lesson_order" json:"order"`

	Options []*ChallengeOption `gorm:"foreignKey:ChallengeID;references:ID" json:"options,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Challenge) TableName() string { return "challenge" }

func (c *Challenge) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CorrectOption returns the first option flagged correct, or nil.
func (c *Challenge) CorrectOption() *ChallengeOption {
	if c == nil {
		return nil
	}
	for _, o := range c.Options {
		if o != nil && o.Correct {
			return o
		}
	}
	return nil
}

type ChallengeOption struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChallengeID uuid.UUID `gorm:"type:uuid;not null;index" json:"challenge_id"`
	Text        string    `gorm:"not null;column:text" json:"text"`
	Correct     bool      `gorm:"not null;column:correct" json:"correct"`
	ImageSrc    string    `gorm:"column:image_src" json:"image_src,omitempty"`
	AudioSrc    string    `gorm:"column:audio_src" json:"audio_src,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (ChallengeOption) TableName() string { return "challenge_option" }

func (o *ChallengeOption) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
