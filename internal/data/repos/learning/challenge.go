package learning

import (
	"context"
	"errors"

	"github.com/google/uuid"
	types "github.com/yungbote/lingo-backend/internal/domain"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ChallengeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, challenges []*types.Challenge) ([]*types.Challenge, error)
	CreateOptions(ctx context.Context, tx *gorm.DB, options []*types.ChallengeOption) ([]*types.ChallengeOption, error)
	GetByID(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID) (*types.Challenge, error)
	GetWithOptions(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID) (*types.Challenge, error)
}

type challengeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChallengeRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeRepo {
	repoLog := baseLog.With("repo", "ChallengeRepo")
	return &challengeRepo{db: db, log: repoLog}
}

func (r *challengeRepo) Create(ctx context.Context, tx *gorm.DB, challenges []*types.Challenge) ([]*types.Challenge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(challenges) == 0 {
		return []*types.Challenge{}, nil
	}

	if err := transaction.WithContext(ctx).Omit("Options").Create(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *challengeRepo) CreateOptions(ctx context.Context, tx *gorm.DB, options []*types.ChallengeOption) ([]*types.ChallengeOption, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(options) == 0 {
		return []*types.ChallengeOption{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

func (r *challengeRepo) GetByID(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID) (*types.Challenge, error) {
	return r.get(ctx, tx, challengeID, false)
}

func (r *challengeRepo) GetWithOptions(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID) (*types.Challenge, error) {
	return r.get(ctx, tx, challengeID, true)
}

func (r *challengeRepo) get(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID, withOptions bool) (*types.Challenge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if challengeID == uuid.Nil {
		return nil, nil
	}

	q := transaction.WithContext(ctx)
	if withOptions {
		q = q.Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
	}

	var challenge types.Challenge
	err := q.Where("id = ?", challengeID).First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}
