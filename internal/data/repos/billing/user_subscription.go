package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/lingo-backend/internal/domain"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserSubscriptionRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserSubscription, error)
	GetBySubscriptionID(ctx context.Context, tx *gorm.DB, subscriptionID string) (*types.UserSubscription, error)
	// UpsertByUserID inserts the subscription or overwrites the stripe fields of the user's row.
	UpsertByUserID(ctx context.Context, tx *gorm.DB, sub *types.UserSubscription) error
	// UpdatePeriodBySubscriptionID returns the number of rows touched.
	UpdatePeriodBySubscriptionID(ctx context.Context, tx *gorm.DB, subscriptionID, priceID string, periodEnd time.Time) (int64, error)
}

type userSubscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) UserSubscriptionRepo {
	repoLog := baseLog.With("repo", "UserSubscriptionRepo")
	return &userSubscriptionRepo{db: db, log: repoLog}
}

func (r *userSubscriptionRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserSubscription, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	return r.first(ctx, tx, "user_id = ?", userID)
}

func (r *userSubscriptionRepo) GetBySubscriptionID(ctx context.Context, tx *gorm.DB, subscriptionID string) (*types.UserSubscription, error) {
	if subscriptionID == "" {
		return nil, nil
	}
	return r.first(ctx, tx, "stripe_subscription_id = ?", subscriptionID)
}

func (r *userSubscriptionRepo) first(ctx context.Context, tx *gorm.DB, where string, arg any) (*types.UserSubscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var sub types.UserSubscription
	err := transaction.WithContext(ctx).Where(where, arg).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *userSubscriptionRepo) UpsertByUserID(ctx context.Context, tx *gorm.DB, sub *types.UserSubscription) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if sub == nil || sub.UserID == uuid.Nil {
		return errors.New("UpsertByUserID: user id required")
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"stripe_customer_id",
				"stripe_subscription_id",
				"stripe_price_id",
				"stripe_current_period_end",
				"updated_at",
			}),
		}).
		Create(sub).Error
}

func (r *userSubscriptionRepo) UpdatePeriodBySubscriptionID(ctx context.Context, tx *gorm.DB, subscriptionID, priceID string, periodEnd time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.UserSubscription{}).
		Where("stripe_subscription_id = ?", subscriptionID).
		Updates(map[string]any{
			"stripe_price_id":           priceID,
			"stripe_current_period_end": periodEnd.UTC(),
		})
	return res.RowsAffected, res.Error
}
