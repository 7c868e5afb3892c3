package services

import (
	"context"

	"github.com/google/uuid"
	domainagg "github.com/yungbote/lingo-backend/internal/domain/aggregates"
	"github.com/yungbote/lingo-backend/internal/observability"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/realtime"
)

type ShopService interface {
	RefillHearts(ctx context.Context, userID uuid.UUID) (*domainagg.RefillHeartsResult, error)
}

type shopService struct {
	log       *logger.Logger
	progress  domainagg.ProgressAggregate
	publisher EventPublisher
}

func NewShopService(log *logger.Logger, progress domainagg.ProgressAggregate, publisher EventPublisher) ShopService {
	return &shopService{log: log.With("service", "ShopService"), progress: progress, publisher: publisher}
}

func (s *shopService) RefillHearts(ctx context.Context, userID uuid.UUID) (*domainagg.RefillHeartsResult, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	res, err := s.progress.RefillHearts(ctx, domainagg.RefillHeartsInput{UserID: userID})
	if err != nil {
		status := string(domainagg.CodeOf(err))
		if status == "" {
			status = "error"
		}
		observability.Current().IncHeartRefill(status)
		return nil, err
	}
	observability.Current().IncHeartRefill("ok")
	if s.publisher != nil {
		s.publisher.ProgressChanged(ctx, realtime.ProgressChanged{
			UserID: userID,
			Kind:   realtime.ChangeHeartsRefilled,
			Hearts: res.Hearts,
			Points: res.Points,
		})
	}
	return &res, nil
}
