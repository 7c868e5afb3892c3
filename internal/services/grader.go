package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yungbote/lingo-backend/internal/data/repos"
	domainagg "github.com/yungbote/lingo-backend/internal/domain/aggregates"
	"github.com/yungbote/lingo-backend/internal/observability"
	"github.com/yungbote/lingo-backend/internal/platform/apierr"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/realtime"
)

var ErrUnauthorized = apierr.Unauthorized(errors.New("unauthorized"))

type GradeResult struct {
	HeartsExhausted bool      `json:"-"`
	Correct         bool      `json:"correct"`
	Practice        bool      `json:"practice"`
	LessonID        uuid.UUID `json:"lesson_id"`
	Hearts          int       `json:"hearts"`
	Points          int       `json:"points"`
}

type GraderService interface {
	// SubmitAnswer grades the selected option against the challenge's correct option.
	SubmitAnswer(ctx context.Context, userID, challengeID, optionID uuid.UUID) (*GradeResult, error)
	SubmitCorrect(ctx context.Context, userID, challengeID uuid.UUID) (*GradeResult, error)
	SubmitIncorrect(ctx context.Context, userID, challengeID uuid.UUID) (*GradeResult, error)
}

type graderService struct {
	log        *logger.Logger
	challenges repos.ChallengeRepo
	progress   domainagg.ProgressAggregate
	publisher  EventPublisher
}

func NewGraderService(log *logger.Logger, challenges repos.ChallengeRepo, progress domainagg.ProgressAggregate, publisher EventPublisher) GraderService {
	return &graderService{
		log:        log.With("service", "GraderService"),
		challenges: challenges,
		progress:   progress,
		publisher:  publisher,
	}
}

func (s *graderService) SubmitAnswer(ctx context.Context, userID, challengeID, optionID uuid.UUID) (*GradeResult, error) {
	const op = "Learning.Grader.SubmitAnswer"
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if challengeID == uuid.Nil || optionID == uuid.Nil {
		return nil, domainagg.Validation(op, "missing challenge_id or option_id")
	}
	ch, err := s.challenges.GetWithOptions(ctx, nil, challengeID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, domainagg.NotFound(op, "challenge not found")
	}
	var selected bool
	for _, o := range ch.Options {
		if o != nil && o.ID == optionID {
			selected = true
			break
		}
	}
	if !selected {
		return nil, domainagg.NotFound(op, "option not found for challenge")
	}
	correct := ch.CorrectOption()
	if correct == nil {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "challenge has no correct option", nil)
	}

	if correct.ID == optionID {
		res, err := s.SubmitCorrect(ctx, userID, challengeID)
		if err != nil {
			return nil, err
		}
		res.Correct = true
		return res, nil
	}
	return s.SubmitIncorrect(ctx, userID, challengeID)
}

func (s *graderService) SubmitCorrect(ctx context.Context, userID, challengeID uuid.UUID) (*GradeResult, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	res, err := s.progress.ApplyCorrectAnswer(ctx, domainagg.AnswerInput{UserID: userID, ChallengeID: challengeID})
	if err != nil {
		return nil, err
	}
	observability.Current().IncAnswer("correct", string(res.Outcome), res.Practice)
	if res.Outcome == domainagg.AnswerApplied {
		s.publish(ctx, userID, realtime.ChangeChallengeCompleted, res)
	}
	return gradeResult(res), nil
}

func (s *graderService) SubmitIncorrect(ctx context.Context, userID, challengeID uuid.UUID) (*GradeResult, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	res, err := s.progress.ApplyIncorrectAnswer(ctx, domainagg.AnswerInput{UserID: userID, ChallengeID: challengeID})
	if err != nil {
		return nil, err
	}
	observability.Current().IncAnswer("incorrect", string(res.Outcome), res.Practice)
	// Subscribers keep their hearts, so nothing changed.
	if res.Outcome == domainagg.AnswerApplied && !res.SubscriptionActive {
		s.publish(ctx, userID, realtime.ChangeHeartLost, res)
	}
	return gradeResult(res), nil
}

func (s *graderService) publish(ctx context.Context, userID uuid.UUID, kind realtime.ChangeKind, res domainagg.AnswerResult) {
	if s.publisher == nil {
		return
	}
	pc := realtime.ProgressChanged{UserID: userID, Kind: kind, Hearts: res.Hearts, Points: res.Points}
	if res.LessonID != uuid.Nil {
		lessonID := res.LessonID
		pc.LessonID = &lessonID
	}
	s.publisher.ProgressChanged(ctx, pc)
}

func gradeResult(res domainagg.AnswerResult) *GradeResult {
	return &GradeResult{
		HeartsExhausted: res.Outcome == domainagg.AnswerHeartsExhausted,
		Practice:        res.Practice,
		LessonID:        res.LessonID,
		Hearts:          res.Hearts,
		Points:          res.Points,
	}
}
