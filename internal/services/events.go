package services

import (
	"context"

	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/realtime"
	"github.com/yungbote/lingo-backend/internal/realtime/bus"
)

// EventPublisher emits change events after a write commits. Publishing is
// best effort: the write already succeeded, so failures are only logged.
type EventPublisher interface {
	ProgressChanged(ctx context.Context, pc realtime.ProgressChanged)
	SubscriptionChanged(ctx context.Context, pc realtime.ProgressChanged)
}

type busPublisher struct {
	log *logger.Logger
	bus bus.Bus
}

func NewEventPublisher(log *logger.Logger, b bus.Bus) EventPublisher {
	return &busPublisher{log: log.With("service", "EventPublisher"), bus: b}
}

func (p *busPublisher) ProgressChanged(ctx context.Context, pc realtime.ProgressChanged) {
	p.publish(ctx, realtime.NewProgressMessage(realtime.EventProgressChanged, pc))
}

func (p *busPublisher) SubscriptionChanged(ctx context.Context, pc realtime.ProgressChanged) {
	pc.Kind = realtime.ChangeSubscription
	p.publish(ctx, realtime.NewProgressMessage(realtime.EventSubscriptionChanged, pc))
}

func (p *busPublisher) publish(ctx context.Context, msg realtime.Message) {
	if p == nil || p.bus == nil {
		return
	}
	if err := p.bus.Publish(context.WithoutCancel(ctx), msg); err != nil {
		p.log.Warn("publish event failed", "event", string(msg.Event), "channel", msg.Channel, "error", err)
	}
}
