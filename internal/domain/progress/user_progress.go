package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/lingo-backend/internal/domain/learning"
)

const (
	DefaultUserName     = "User"
	DefaultUserImageSrc = "/mascot.svg"
)

// UserProgress is the per-user gamification state. Version is bumped on every
// write and used as the compare-and-set guard for concurrent grading.
type UserProgress struct {
	UserID         uuid.UUID        `gorm:"type:uuid;primaryKey" json:"user_id"`
	UserName       string           `gorm:"not null;column:user_name" json:"user_name"`
	UserImageSrc   string           `gorm:"not null;column:user_image_src" json:"user_image_src"`
	ActiveCourseID *uuid.UUID       `gorm:"type:uuid;index;column:active_course_id" json:"active_course_id,omitempty"`
	ActiveCourse   *learning.Course `gorm:"foreignKey:ActiveCourseID;references:ID" json:"active_course,omitempty"`
	Hearts         int              `gorm:"not null;column:hearts" json:"hearts"`
	Points         int              `gorm:"not null;column:points;index" json:"points"`
	Version        int              `gorm:"not null;column:version" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (UserProgress) TableName() string { return "user_progress" }
