package aggregates

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/yungbote/lingo-backend/internal/data/repos"
	types "github.com/yungbote/lingo-backend/internal/domain"
	domainagg "github.com/yungbote/lingo-backend/internal/domain/aggregates"
	"github.com/yungbote/lingo-backend/internal/platform/dbctx"
)

const userProgressTable = "user_progress"

type ProgressAggregateDeps struct {
	Base  BaseDeps
	Rules types.Rules

	Progress          repos.UserProgressRepo
	ChallengeProgress repos.ChallengeProgressRepo
	Challenges        repos.ChallengeRepo
	Courses           repos.CourseRepo
	Subscriptions     repos.UserSubscriptionRepo
}

type progressAggregate struct {
	deps ProgressAggregateDeps
}

func NewProgressAggregate(deps ProgressAggregateDeps) domainagg.ProgressAggregate {
	deps.Base = deps.Base.withDefaults()
	deps.Rules = deps.Rules.WithDefaults()
	return &progressAggregate{deps: deps}
}

func (a *progressAggregate) Contract() domainagg.Contract {
	return domainagg.ProgressAggregateContract
}

func (a *progressAggregate) configured() bool {
	d := a.deps
	return d.Progress != nil && d.ChallengeProgress != nil && d.Challenges != nil &&
		d.Courses != nil && d.Subscriptions != nil
}

// answerState is everything an answer decision reads, loaded inside the write tx.
type answerState struct {
	challenge          *types.Challenge
	progress           *types.UserProgress
	practice           bool
	subscriptionActive bool
}

func (a *progressAggregate) loadAnswerState(dbc dbctx.Context, op string, in domainagg.AnswerInput) (*answerState, error) {
	ch, err := a.deps.Challenges.GetByID(dbc.Ctx, dbc.Tx, in.ChallengeID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, domainagg.NotFound(op, "challenge not found")
	}
	up, err := a.deps.Progress.GetByUserID(dbc.Ctx, dbc.Tx, in.UserID)
	if err != nil {
		return nil, err
	}
	if up == nil {
		return nil, domainagg.NotFound(op, "user progress not found")
	}
	practice, err := a.deps.ChallengeProgress.Exists(dbc.Ctx, dbc.Tx, in.UserID, in.ChallengeID)
	if err != nil {
		return nil, err
	}
	sub, err := a.deps.Subscriptions.GetByUserID(dbc.Ctx, dbc.Tx, in.UserID)
	if err != nil {
		return nil, err
	}
	return &answerState{
		challenge:          ch,
		progress:           up,
		practice:           practice,
		subscriptionActive: sub.IsActive(a.deps.Base.Clock()),
	}, nil
}

func validateAnswerInput(op string, in domainagg.AnswerInput) error {
	if in.UserID == uuid.Nil {
		return domainagg.Validation(op, "missing user_id")
	}
	if in.ChallengeID == uuid.Nil {
		return domainagg.Validation(op, "missing challenge_id")
	}
	return nil
}

func (a *progressAggregate) ApplyCorrectAnswer(ctx context.Context, in domainagg.AnswerInput) (domainagg.AnswerResult, error) {
	const op = "Learning.Progress.ApplyCorrectAnswer"
	var out domainagg.AnswerResult
	if err := validateAnswerInput(op, in); err != nil {
		return out, err
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "progress aggregate repos not configured", nil)
	}

	rules := a.deps.Rules
	err := executeWriteWithRetry(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		st, err := a.loadAnswerState(dbc, op, in)
		if err != nil {
			return err
		}
		up := st.progress
		out = domainagg.AnswerResult{
			Outcome:            domainagg.AnswerApplied,
			Practice:           st.practice,
			SubscriptionActive: st.subscriptionActive,
			LessonID:           st.challenge.LessonID,
			Hearts:             up.Hearts,
			Points:             up.Points,
		}

		// Out of hearts on a first attempt only blocks non-subscribers.
		if up.Hearts == 0 && !st.practice && !st.subscriptionActive {
			out.Outcome = domainagg.AnswerHeartsExhausted
			return nil
		}

		if err := a.deps.ChallengeProgress.MarkCompleted(dbc.Ctx, dbc.Tx, in.UserID, in.ChallengeID); err != nil {
			return err
		}

		hearts := up.Hearts
		if st.practice {
			hearts = rules.RestoreHeart(hearts)
		}
		points := up.Points + rules.PointsPerChallenge

		ok, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, userProgressTable, "user_id", in.UserID, up.Version, map[string]any{
			"hearts":     hearts,
			"points":     points,
			"updated_at": a.deps.Base.Clock(),
		})
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "user progress changed while grading"); err != nil {
			return err
		}
		out.Hearts = hearts
		out.Points = points
		return nil
	})
	return out, err
}

func (a *progressAggregate) ApplyIncorrectAnswer(ctx context.Context, in domainagg.AnswerInput) (domainagg.AnswerResult, error) {
	const op = "Learning.Progress.ApplyIncorrectAnswer"
	var out domainagg.AnswerResult
	if err := validateAnswerInput(op, in); err != nil {
		return out, err
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "progress aggregate repos not configured", nil)
	}

	rules := a.deps.Rules
	err := executeWriteWithRetry(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		st, err := a.loadAnswerState(dbc, op, in)
		if err != nil {
			return err
		}
		up := st.progress
		out = domainagg.AnswerResult{
			Outcome:            domainagg.AnswerApplied,
			Practice:           st.practice,
			SubscriptionActive: st.subscriptionActive,
			LessonID:           st.challenge.LessonID,
			Hearts:             up.Hearts,
			Points:             up.Points,
		}

		// Subscribers never lose hearts.
		if st.subscriptionActive {
			return nil
		}
		if up.Hearts == 0 {
			out.Outcome = domainagg.AnswerHeartsExhausted
			return nil
		}

		hearts := rules.LoseHeart(up.Hearts)
		ok, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, userProgressTable, "user_id", in.UserID, up.Version, map[string]any{
			"hearts":     hearts,
			"updated_at": a.deps.Base.Clock(),
		})
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "user progress changed while grading"); err != nil {
			return err
		}
		out.Hearts = hearts
		return nil
	})
	return out, err
}

func (a *progressAggregate) RefillHearts(ctx context.Context, in domainagg.RefillHeartsInput) (domainagg.RefillHeartsResult, error) {
	const op = "Learning.Progress.RefillHearts"
	var out domainagg.RefillHeartsResult
	if in.UserID == uuid.Nil {
		return out, domainagg.Validation(op, "missing user_id")
	}
	if a.deps.Progress == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "progress aggregate repos not configured", nil)
	}

	rules := a.deps.Rules
	err := executeWriteWithRetry(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		up, err := a.deps.Progress.GetByUserID(dbc.Ctx, dbc.Tx, in.UserID)
		if err != nil {
			return err
		}
		if up == nil {
			return domainagg.NotFound(op, "user progress not found")
		}
		if up.Hearts >= rules.MaxHearts {
			return domainagg.Validation(op, "hearts already full")
		}
		if up.Points < rules.PointsToRefill {
			return domainagg.Validation(op, "not enough points")
		}

		hearts := rules.MaxHearts
		points := up.Points - rules.PointsToRefill
		ok, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, userProgressTable, "user_id", in.UserID, up.Version, map[string]any{
			"hearts":     hearts,
			"points":     points,
			"updated_at": a.deps.Base.Clock(),
		})
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "user progress changed while refilling"); err != nil {
			return err
		}
		out = domainagg.RefillHeartsResult{Hearts: hearts, Points: points}
		return nil
	})
	return out, err
}

func (a *progressAggregate) SelectCourse(ctx context.Context, in domainagg.SelectCourseInput) (domainagg.SelectCourseResult, error) {
	const op = "Learning.Progress.SelectCourse"
	var out domainagg.SelectCourseResult
	if in.UserID == uuid.Nil {
		return out, domainagg.Validation(op, "missing user_id")
	}
	if in.CourseID == uuid.Nil {
		return out, domainagg.Validation(op, "missing course_id")
	}
	if a.deps.Progress == nil || a.deps.Courses == nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "progress aggregate repos not configured", nil)
	}

	userName := strings.TrimSpace(in.UserName)
	if userName == "" {
		userName = types.DefaultUserName
	}
	imageSrc := strings.TrimSpace(in.ImageSrc)
	if imageSrc == "" {
		imageSrc = types.DefaultUserImageSrc
	}

	err := executeWriteWithRetry(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		course, err := a.deps.Courses.GetWithUnitsAndLessons(dbc.Ctx, dbc.Tx, in.CourseID)
		if err != nil {
			return err
		}
		if course == nil {
			return domainagg.NotFound(op, "course not found")
		}
		if len(course.Units) == 0 || len(course.Units[0].Lessons) == 0 {
			return domainagg.Validation(op, "course is empty")
		}

		up, err := a.deps.Progress.GetByUserID(dbc.Ctx, dbc.Tx, in.UserID)
		if err != nil {
			return err
		}
		if up == nil {
			courseID := in.CourseID
			created, err := a.deps.Progress.Create(dbc.Ctx, dbc.Tx, []*types.UserProgress{{
				UserID:         in.UserID,
				UserName:       userName,
				UserImageSrc:   imageSrc,
				ActiveCourseID: &courseID,
				Hearts:         a.deps.Rules.MaxHearts,
				Points:         0,
			}})
			if err != nil {
				return err
			}
			out = domainagg.SelectCourseResult{Created: true, Hearts: created[0].Hearts, Points: created[0].Points}
			return nil
		}

		ok, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, userProgressTable, "user_id", in.UserID, up.Version, map[string]any{
			"active_course_id": in.CourseID,
			"user_name":        userName,
			"user_image_src":   imageSrc,
			"updated_at":       a.deps.Base.Clock(),
		})
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "user progress changed while selecting course"); err != nil {
			return err
		}
		out = domainagg.SelectCourseResult{Created: false, Hearts: up.Hearts, Points: up.Points}
		return nil
	})
	return out, err
}
