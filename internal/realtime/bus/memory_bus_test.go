package bus

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/lingo-backend/internal/realtime"
)

func TestMemoryBusDeliversToEveryForwarder(t *testing.T) {
	b := NewMemoryBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var first, second []realtime.Message
	if err := b.StartForwarder(ctx, func(m realtime.Message) { first = append(first, m) }); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}
	if err := b.StartForwarder(ctx, func(m realtime.Message) { second = append(second, m) }); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}

	msg := realtime.NewProgressMessage(realtime.EventProgressChanged, realtime.ProgressChanged{UserID: uuid.New()})
	if err := b.Publish(ctx, msg); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("delivery: want 1/1 got %d/%d", len(first), len(second))
	}
	if first[0].Channel != msg.Channel {
		t.Fatalf("channel: want=%s got=%s", msg.Channel, first[0].Channel)
	}
}

func TestMemoryBusClosed(t *testing.T) {
	b := NewMemoryBus()
	_ = b.Close()
	if err := b.Publish(context.Background(), realtime.Message{}); err == nil {
		t.Fatalf("expected publish on closed bus to fail")
	}
}
