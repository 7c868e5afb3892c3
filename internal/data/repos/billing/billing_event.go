package billing

import (
	"context"
	"time"

	types "github.com/yungbote/lingo-backend/internal/domain"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BillingEventRepo interface {
	Exists(ctx context.Context, tx *gorm.DB, eventID string) (bool, error)
	// Record stores the event and reports false when it was already present.
	Record(ctx context.Context, tx *gorm.DB, event *types.BillingEvent) (bool, error)
	DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type billingEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBillingEventRepo(db *gorm.DB, baseLog *logger.Logger) BillingEventRepo {
	repoLog := baseLog.With("repo", "BillingEventRepo")
	return &billingEventRepo{db: db, log: repoLog}
}

func (r *billingEventRepo) Exists(ctx context.Context, tx *gorm.DB, eventID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.BillingEvent{}).
		Where("id = ?", eventID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *billingEventRepo) Record(ctx context.Context, tx *gorm.DB, event *types.BillingEvent) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if event.ProcessedAt.IsZero() {
		event.ProcessedAt = time.Now().UTC()
	}
	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *billingEventRepo) DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Where("processed_at < ?", cutoff.UTC()).
		Delete(&types.BillingEvent{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		r.log.Info("purged billing events", "count", res.RowsAffected, "cutoff", cutoff.UTC())
	}
	return res.RowsAffected, nil
}
