package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func recvMessage(t *testing.T, ch <-chan Message, timeout time.Duration) Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for message")
	}
	return Message{}
}

func TestHubRoutesByUserChannel(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	alice, bob := uuid.New(), uuid.New()

	ca := hub.NewClient(alice)
	cb := hub.NewClient(bob)
	hub.AddChannel(ca, UserChannel(alice))
	hub.AddChannel(cb, UserChannel(bob))

	hub.Broadcast(NewProgressMessage(EventProgressChanged, ProgressChanged{UserID: alice, Kind: ChangeHeartLost, Hearts: 4}))

	msg := recvMessage(t, ca.Outbound, time.Second)
	if msg.Event != EventProgressChanged || msg.Data == nil || msg.Data.Hearts != 4 {
		t.Fatalf("unexpected message: %+v", msg)
	}
	select {
	case m := <-cb.Outbound:
		t.Fatalf("bob received alice's event: %+v", m)
	default:
	}
}

func TestHubCloseClientUnsubscribes(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	user := uuid.New()
	c := hub.NewClient(user)
	hub.AddChannel(c, UserChannel(user))
	if hub.Subscribers(UserChannel(user)) != 1 {
		t.Fatalf("subscribers: want=1 got=%d", hub.Subscribers(UserChannel(user)))
	}
	hub.CloseClient(c)
	hub.CloseClient(c)
	if hub.Subscribers(UserChannel(user)) != 0 {
		t.Fatalf("subscribers after close: want=0 got=%d", hub.Subscribers(UserChannel(user)))
	}
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(mustTestLogger(t))
	user := uuid.New()
	c := hub.NewClient(user)
	hub.AddChannel(c, UserChannel(user))
	for i := 0; i < cap(c.Outbound)+5; i++ {
		hub.Broadcast(NewProgressMessage(EventProgressChanged, ProgressChanged{UserID: user, Points: i}))
	}
	if len(c.Outbound) != cap(c.Outbound) {
		t.Fatalf("buffer: want full (%d) got %d", cap(c.Outbound), len(c.Outbound))
	}
}
