package services

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/yungbote/lingo-backend/internal/data/repos"
	types "github.com/yungbote/lingo-backend/internal/domain"
	"github.com/yungbote/lingo-backend/internal/domain/progress"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
)

type ChallengeView struct {
	*types.Challenge
	Completed bool `json:"completed"`
}

type LessonView struct {
	ID         uuid.UUID        `json:"id"`
	UnitID     uuid.UUID        `json:"unit_id"`
	Title      string           `json:"title"`
	Order      int              `json:"order"`
	Challenges []*ChallengeView `json:"challenges"`
	Percentage int              `json:"percentage"`
}

type LessonSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	Completed bool      `json:"completed"`
}

type UnitView struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Order       int              `json:"order"`
	Lessons     []*LessonSummary `json:"lessons"`
}

// ProgressResolver derives lesson completion and the active lesson from stored progress.
// All methods are reads; scope may be nil.
type ProgressResolver interface {
	UserProgress(ctx context.Context, scope *ReadScope, userID uuid.UUID) (*types.UserProgress, error)
	ResolveActiveLesson(ctx context.Context, scope *ReadScope, userID uuid.UUID) (*types.Lesson, error)
	LessonView(ctx context.Context, scope *ReadScope, userID uuid.UUID, lessonID *uuid.UUID) (*LessonView, error)
	Units(ctx context.Context, scope *ReadScope, userID uuid.UUID) ([]*UnitView, error)
}

type progressResolver struct {
	log               *logger.Logger
	progress          repos.UserProgressRepo
	challengeProgress repos.ChallengeProgressRepo
	units             repos.UnitRepo
	lessons           repos.LessonRepo
}

func NewProgressResolver(
	log *logger.Logger,
	progress repos.UserProgressRepo,
	challengeProgress repos.ChallengeProgressRepo,
	units repos.UnitRepo,
	lessons repos.LessonRepo,
) ProgressResolver {
	return &progressResolver{
		log:               log.With("service", "ProgressResolver"),
		progress:          progress,
		challengeProgress: challengeProgress,
		units:             units,
		lessons:           lessons,
	}
}

func (r *progressResolver) UserProgress(ctx context.Context, scope *ReadScope, userID uuid.UUID) (*types.UserProgress, error) {
	return scoped(scope, "progress:"+userID.String(), func() (*types.UserProgress, error) {
		return r.progress.GetWithActiveCourse(ctx, nil, userID)
	})
}

// courseTree returns the active course's units with lessons and challenges, or nil
// when the user has no progress or no active course.
func (r *progressResolver) courseTree(ctx context.Context, scope *ReadScope, userID uuid.UUID) ([]*types.Unit, error) {
	up, err := r.UserProgress(ctx, scope, userID)
	if err != nil || up == nil || up.ActiveCourseID == nil {
		return nil, err
	}
	courseID := *up.ActiveCourseID
	return scoped(scope, "tree:"+courseID.String(), func() ([]*types.Unit, error) {
		return r.units.GetTreeByCourseID(ctx, nil, courseID)
	})
}

// progressByChallenge groups the user's progress rows for every challenge in units.
func (r *progressResolver) progressByChallenge(ctx context.Context, scope *ReadScope, userID uuid.UUID, units []*types.Unit) (map[uuid.UUID][]*types.ChallengeProgress, error) {
	ids := make([]uuid.UUID, 0)
	for _, u := range units {
		for _, l := range u.Lessons {
			for _, ch := range l.Challenges {
				ids = append(ids, ch.ID)
			}
		}
	}
	return scoped(scope, "challenge_progress:"+userID.String(), func() (map[uuid.UUID][]*types.ChallengeProgress, error) {
		return r.loadProgressRows(ctx, userID, ids)
	})
}

func (r *progressResolver) loadProgressRows(ctx context.Context, userID uuid.UUID, challengeIDs []uuid.UUID) (map[uuid.UUID][]*types.ChallengeProgress, error) {
	out := make(map[uuid.UUID][]*types.ChallengeProgress, len(challengeIDs))
	if len(challengeIDs) == 0 {
		return out, nil
	}
	rows, err := r.challengeProgress.GetByUserAndChallengeIDs(ctx, nil, userID, challengeIDs)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ChallengeID] = append(out[row.ChallengeID], row)
	}
	return out, nil
}

func (r *progressResolver) ResolveActiveLesson(ctx context.Context, scope *ReadScope, userID uuid.UUID) (*types.Lesson, error) {
	units, err := r.courseTree(ctx, scope, userID)
	if err != nil || len(units) == 0 {
		return nil, err
	}
	rows, err := r.progressByChallenge(ctx, scope, userID, units)
	if err != nil {
		return nil, err
	}
	return firstIncompleteLesson(units, rows), nil
}

// firstIncompleteLesson walks units and lessons in curriculum order and returns the
// first lesson holding a challenge that is not fully completed.
func firstIncompleteLesson(units []*types.Unit, rows map[uuid.UUID][]*types.ChallengeProgress) *types.Lesson {
	for _, u := range units {
		for _, l := range u.Lessons {
			for _, ch := range l.Challenges {
				if !progress.AllCompleted(rows[ch.ID]) {
					return l
				}
			}
		}
	}
	return nil
}

func (r *progressResolver) LessonView(ctx context.Context, scope *ReadScope, userID uuid.UUID, lessonID *uuid.UUID) (*LessonView, error) {
	var id uuid.UUID
	if lessonID != nil && *lessonID != uuid.Nil {
		id = *lessonID
	} else {
		active, err := r.ResolveActiveLesson(ctx, scope, userID)
		if err != nil {
			return nil, err
		}
		if active == nil {
			return nil, nil
		}
		id = active.ID
	}

	lesson, err := r.lessons.GetWithChallenges(ctx, nil, id)
	if err != nil || lesson == nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(lesson.Challenges))
	for _, ch := range lesson.Challenges {
		ids = append(ids, ch.ID)
	}
	rows, err := r.loadProgressRows(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	challenges := AnnotateChallenges(lesson, rows)
	return &LessonView{
		ID:         lesson.ID,
		UnitID:     lesson.UnitID,
		Title:      lesson.Title,
		Order:      lesson.Order,
		Challenges: challenges,
		Percentage: LessonPercentage(challenges),
	}, nil
}

func (r *progressResolver) Units(ctx context.Context, scope *ReadScope, userID uuid.UUID) ([]*UnitView, error) {
	units, err := r.courseTree(ctx, scope, userID)
	if err != nil || len(units) == 0 {
		return []*UnitView{}, err
	}
	rows, err := r.progressByChallenge(ctx, scope, userID, units)
	if err != nil {
		return nil, err
	}
	out := make([]*UnitView, 0, len(units))
	for _, u := range units {
		uv := &UnitView{
			ID:          u.ID,
			Title:       u.Title,
			Description: u.Description,
			Order:       u.Order,
			Lessons:     make([]*LessonSummary, 0, len(u.Lessons)),
		}
		for _, l := range u.Lessons {
			uv.Lessons = append(uv.Lessons, &LessonSummary{
				ID:        l.ID,
				Title:     l.Title,
				Order:     l.Order,
				Completed: lessonCompleted(l, rows),
			})
		}
		out = append(out, uv)
	}
	return out, nil
}

// lessonCompleted is false for a lesson without challenges.
func lessonCompleted(l *types.Lesson, rows map[uuid.UUID][]*types.ChallengeProgress) bool {
	if len(l.Challenges) == 0 {
		return false
	}
	for _, ch := range l.Challenges {
		if !progress.AllCompleted(rows[ch.ID]) {
			return false
		}
	}
	return true
}

// AnnotateChallenges marks a challenge completed when it has at least one progress
// row and every row is completed.
func AnnotateChallenges(lesson *types.Lesson, rows map[uuid.UUID][]*types.ChallengeProgress) []*ChallengeView {
	if lesson == nil {
		return []*ChallengeView{}
	}
	out := make([]*ChallengeView, 0, len(lesson.Challenges))
	for _, ch := range lesson.Challenges {
		out = append(out, &ChallengeView{Challenge: ch, Completed: progress.AllCompleted(rows[ch.ID])})
	}
	return out
}

// LessonPercentage is round(100 * completed / total), 0 for an empty lesson.
func LessonPercentage(challenges []*ChallengeView) int {
	if len(challenges) == 0 {
		return 0
	}
	done := 0
	for _, ch := range challenges {
		if ch.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(challenges)) * 100))
}
