package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/lingo-backend/internal/data/repos"
	types "github.com/yungbote/lingo-backend/internal/domain"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
)

type SubscriptionStatus struct {
	IsActive         bool       `json:"is_active"`
	StripePriceID    string     `json:"stripe_price_id,omitempty"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
}

type SubscriptionService interface {
	// Get returns the stored subscription, or nil when the user never subscribed.
	Get(ctx context.Context, userID uuid.UUID) (*types.UserSubscription, error)
	Status(ctx context.Context, userID uuid.UUID) (*SubscriptionStatus, error)
}

type subscriptionService struct {
	log   *logger.Logger
	subs  repos.UserSubscriptionRepo
	clock func() time.Time
}

func NewSubscriptionService(log *logger.Logger, subs repos.UserSubscriptionRepo, clock func() time.Time) SubscriptionService {
	if clock == nil {
		clock = time.Now
	}
	return &subscriptionService{log: log.With("service", "SubscriptionService"), subs: subs, clock: clock}
}

func (s *subscriptionService) Get(ctx context.Context, userID uuid.UUID) (*types.UserSubscription, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	return s.subs.GetByUserID(ctx, nil, userID)
}

func (s *subscriptionService) Status(ctx context.Context, userID uuid.UUID) (*SubscriptionStatus, error) {
	sub, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return subscriptionStatus(sub, s.clock()), nil
}

func subscriptionStatus(sub *types.UserSubscription, now time.Time) *SubscriptionStatus {
	if sub == nil {
		return &SubscriptionStatus{}
	}
	end := sub.StripeCurrentPeriodEnd
	return &SubscriptionStatus{
		IsActive:         sub.IsActive(now),
		StripePriceID:    sub.StripePriceID,
		CurrentPeriodEnd: &end,
	}
}
