package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title    string    `gorm:"not null;column:title" json:"title"`
	ImageSrc string    `gorm:"not null;column:image_src" json:"image_src"`

	Units []*Unit `gorm:"foreignKey:CourseID;references:ID" json:"units,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Course) TableName() string { return "course" }

func (c *Course) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Unit struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index:idx_unit_course_order" json:"course_id"`
	Title       string    `gorm:"not null;column:title" json:"title"`
	Description string    `gorm:"not null;column:description" json:"description"`
	Order       int       `gorm:"not null;column:sort_order;index:idx_unit_course_order" json:"order"`

	Lessons []*Lesson `gorm:"foreignKey:UnitID;references:ID" json:"lessons,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Unit) TableName() string { return "unit" }

func (u *Unit) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Lesson struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UnitID uuid.UUID `gorm:"type:uuid;not null;index:idx_lesson_unit_order" json:"unit_id"`
	Title  string    `gorm:"not null;column:title" json:"title"`
	Order  int       `gorm:"not null;column:sort_order;index:idx_lesson_unit_order" json:"order"`

	Challenges []*Challenge `gorm:"foreignKey:LessonID;references:ID" json:"challenges,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Lesson) TableName() string { return "lesson" }

func (l *Lesson) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
