package progress

import (
	"context"
	"errors"

	"github.com/google/uuid"
	types "github.com/yungbote/lingo-backend/internal/domain"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.UserProgress) ([]*types.UserProgress, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProgress, error)
	GetWithActiveCourse(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProgress, error)
	// TopByPoints orders by points desc, breaking ties by insertion order.
	TopByPoints(ctx context.Context, tx *gorm.DB, limit int) ([]*types.UserProgress, error)
}

type userProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserProgressRepo(db *gorm.DB, baseLog *logger.Logger) UserProgressRepo {
	repoLog := baseLog.With("repo", "UserProgressRepo")
	return &userProgressRepo{db: db, log: repoLog}
}

func (r *userProgressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserProgress) ([]*types.UserProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.UserProgress{}, nil
	}

	if err := transaction.WithContext(ctx).Omit("ActiveCourse").Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProgress, error) {
	return r.get(ctx, tx, userID, false)
}

func (r *userProgressRepo) GetWithActiveCourse(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProgress, error) {
	return r.get(ctx, tx, userID, true)
}

func (r *userProgressRepo) get(ctx context.Context, tx *gorm.DB, userID uuid.UUID, withCourse bool) (*types.UserProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil {
		return nil, nil
	}

	q := transaction.WithContext(ctx)
	if withCourse {
		q = q.Preload("ActiveCourse")
	}

	var row types.UserProgress
	err := q.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *userProgressRepo) TopByPoints(ctx context.Context, tx *gorm.DB, limit int) ([]*types.UserProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if limit <= 0 {
		limit = 10
	}

	var results []*types.UserProgress
	if err := transaction.WithContext(ctx).
		Order("points DESC, created_at ASC, user_id ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
