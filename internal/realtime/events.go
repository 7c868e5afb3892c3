package realtime

import (
	"time"

	"github.com/google/uuid"
)

type EventName string

const (
	// EventProgressChanged fires after any committed change to a user's
	// hearts, points, challenge completion or active course.
	EventProgressChanged EventName = "ProgressChanged"
	// EventSubscriptionChanged fires after a billing webhook updates a subscription.
	EventSubscriptionChanged EventName = "SubscriptionChanged"
)

type ChangeKind string

const (
	ChangeChallengeCompleted ChangeKind = "challenge_completed"
	ChangeHeartLost          ChangeKind = "heart_lost"
	ChangeHeartsRefilled     ChangeKind = "hearts_refilled"
	ChangeCourseSelected     ChangeKind = "course_selected"
	ChangeSubscription       ChangeKind = "subscription"
)

type ProgressChanged struct {
	UserID     uuid.UUID  `json:"user_id"`
	LessonID   *uuid.UUID `json:"lesson_id,omitempty"`
	CourseID   *uuid.UUID `json:"course_id,omitempty"`
	Kind       ChangeKind `json:"kind"`
	Hearts     int        `json:"hearts"`
	Points     int        `json:"points"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// Message is the envelope carried by the bus and streamed to SSE clients.
// Channel is the user id, so a client only sees its own events.
type Message struct {
	Channel string           `json:"channel"`
	Event   EventName        `json:"event"`
	Data    *ProgressChanged `json:"data,omitempty"`
}

func UserChannel(userID uuid.UUID) string { return "user:" + userID.String() }

func NewProgressMessage(event EventName, pc ProgressChanged) Message {
	if pc.OccurredAt.IsZero() {
		pc.OccurredAt = time.Now().UTC()
	}
	return Message{Channel: UserChannel(pc.UserID), Event: event, Data: &pc}
}
