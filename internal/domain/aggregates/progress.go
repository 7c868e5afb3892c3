package aggregates

import (
	"context"

	"github.com/google/uuid"
)

var ProgressAggregateContract = Contract{
	Name:             "Learning.ProgressAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes: "Owns hearts, points and challenge completion for one user. Every write reads the " +
		"progress row, subscription and challenge progress inside one transaction and commits " +
		"through a version compare-and-set.",
}

// ProgressAggregate owns the hearts/points economy writes.
//
// Write failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeRetryable, CodeInternal.
// HeartsExhausted is not an error: it is reported through AnswerOutcome.
type ProgressAggregate interface {
	Aggregate

	// ApplyCorrectAnswer records a correct answer, awarding points and, on practice, a heart.
	ApplyCorrectAnswer(ctx context.Context, in AnswerInput) (AnswerResult, error)

	// ApplyIncorrectAnswer charges one heart unless the user is subscribed.
	ApplyIncorrectAnswer(ctx context.Context, in AnswerInput) (AnswerResult, error)

	// RefillHearts trades points for a full set of hearts.
	RefillHearts(ctx context.Context, in RefillHeartsInput) (RefillHeartsResult, error)

	// SelectCourse sets the active course, creating the progress row on first use.
	SelectCourse(ctx context.Context, in SelectCourseInput) (SelectCourseResult, error)
}

type AnswerOutcome string

const (
	AnswerApplied         AnswerOutcome = "applied"
	AnswerHeartsExhausted AnswerOutcome = "hearts_exhausted"
)

type AnswerInput struct {
	UserID      uuid.UUID
	ChallengeID uuid.UUID
}

type AnswerResult struct {
	Outcome            AnswerOutcome
	Practice           bool
	SubscriptionActive bool
	LessonID           uuid.UUID
	Hearts             int
	Points             int
}

type RefillHeartsInput struct {
	UserID uuid.UUID
}

type RefillHeartsResult struct {
	Hearts int
	Points int
}

type SelectCourseInput struct {
	UserID   uuid.UUID
	CourseID uuid.UUID
	UserName string
	ImageSrc string
}

type SelectCourseResult struct {
	Created bool
	Hearts  int
	Points  int
}
