package learning

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/lingo-backend/internal/domain"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UnitRepo interface {
	Create(ctx context.Context, tx *gorm.DB, units []*types.Unit) ([]*types.Unit, error)
	// GetTreeByCourseID returns the units of a course with lessons and challenges
	// preloaded, every level in curriculum order. Options are not loaded.
	GetTreeByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.Unit, error)
}

type unitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUnitRepo(db *gorm.DB, baseLog *logger.Logger) UnitRepo {
	repoLog := baseLog.With("repo", "UnitRepo")
	return &unitRepo{db: db, log: repoLog}
}

func (r *unitRepo) Create(ctx context.Context, tx *gorm.DB, units []*types.Unit) ([]*types.Unit, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(units) == 0 {
		return []*types.Unit{}, nil
	}

	if err := transaction.WithContext(ctx).Omit("Lessons").Create(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *unitRepo) GetTreeByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.Unit, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Unit
	if courseID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Lessons", orderedByPosition).
		Preload("Lessons.Challenges", orderedByPosition).
		Where("course_id = ?", courseID).
		Order(curriculumOrder).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
