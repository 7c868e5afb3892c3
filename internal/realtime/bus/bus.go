package bus

import (
	"context"

	"github.com/yungbote/lingo-backend/internal/realtime"
)

// Bus carries realtime messages between API instances. Every forwarder
// started on a bus receives every published message.
type Bus interface {
	Publish(ctx context.Context, msg realtime.Message) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.Message)) error
	Close() error
}
