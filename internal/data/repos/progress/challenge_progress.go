package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/lingo-backend/internal/domain"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ChallengeProgress) ([]*types.ChallengeProgress, error)
	GetByUserAndChallenge(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) ([]*types.ChallengeProgress, error)
	GetByUserAndChallengeIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, challengeIDs []uuid.UUID) ([]*types.ChallengeProgress, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) (bool, error)
	// MarkCompleted inserts the row or flips an existing one to completed.
	MarkCompleted(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) error
}

type challengeProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChallengeProgressRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeProgressRepo {
	repoLog := baseLog.With("repo", "ChallengeProgressRepo")
	return &challengeProgressRepo{db: db, log: repoLog}
}

func (r *challengeProgressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ChallengeProgress) ([]*types.ChallengeProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.ChallengeProgress{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *challengeProgressRepo) GetByUserAndChallenge(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) ([]*types.ChallengeProgress, error) {
	return r.GetByUserAndChallengeIDs(ctx, tx, userID, []uuid.UUID{challengeID})
}

func (r *challengeProgressRepo) GetByUserAndChallengeIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, challengeIDs []uuid.UUID) ([]*types.ChallengeProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ChallengeProgress
	if userID == uuid.Nil || len(challengeIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND challenge_id IN ?", userID, challengeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *challengeProgressRepo) Exists(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ChallengeProgress{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *challengeProgressRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	row := &types.ChallengeProgress{
		UserID:      userID,
		ChallengeID: challengeID,
		Completed:   true,
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "challenge_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"completed":  true,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(row).Error
}
