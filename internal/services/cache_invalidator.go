package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/yungbote/lingo-backend/internal/data/cache"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/realtime"
	"github.com/yungbote/lingo-backend/internal/realtime/bus"
)

// CacheInvalidator drops a user's cached views whenever the bus reports a change for them.
type CacheInvalidator struct {
	log   *logger.Logger
	cache cache.ViewCache
}

func NewCacheInvalidator(log *logger.Logger, viewCache cache.ViewCache) *CacheInvalidator {
	return &CacheInvalidator{log: log.With("service", "CacheInvalidator"), cache: viewCache}
}

func (ci *CacheInvalidator) Start(ctx context.Context, b bus.Bus) error {
	if ci == nil || ci.cache == nil || b == nil {
		return nil
	}
	return b.StartForwarder(ctx, func(m realtime.Message) {
		ci.Handle(context.WithoutCancel(ctx), m)
	})
}

func (ci *CacheInvalidator) Handle(ctx context.Context, m realtime.Message) {
	switch m.Event {
	case realtime.EventProgressChanged, realtime.EventSubscriptionChanged:
	default:
		return
	}
	if m.Data == nil || m.Data.UserID == uuid.Nil {
		return
	}
	keys := cache.UserViewKeys(m.Data.UserID, m.Data.LessonID)
	if err := ci.cache.Delete(ctx, keys...); err != nil {
		ci.log.Warn("view cache invalidation failed", "user_id", m.Data.UserID.String(), "error", err)
	}
}
