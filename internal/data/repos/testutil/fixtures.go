package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/lingo-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:       uuid.New(),
		Title:    title,
		ImageSrc: "/" + title + ".svg",
	}
	if err := tx.WithContext(ctx).Omit("Units").Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedUnit(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, order int) *types.Unit {
	tb.Helper()
	u := &types.Unit{
		ID:          uuid.New(),
		CourseID:    courseID,
		Title:       fmt.Sprintf("Unit %d", order),
		Description: "unit",
		Order:       order,
	}
	if err := tx.WithContext(ctx).Omit("Lessons").Create(u).Error; err != nil {
		tb.Fatalf("seed unit: %v", err)
	}
	return u
}

func SeedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, unitID uuid.UUID, order int) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		ID:     uuid.New(),
		UnitID: unitID,
		Title:  fmt.Sprintf("Lesson %d", order),
		Order:  order,
	}
	if err := tx.WithContext(ctx).Omit("Challenges").Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

// SeedChallenge creates a SELECT challenge with one correct and one wrong option.
func SeedChallenge(tb testing.TB, ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, order int) *types.Challenge {
	tb.Helper()
	c := &types.Challenge{
		ID:       uuid.New(),
		LessonID: lessonID,
		Type:     types.ChallengeTypeSelect,
		Question: fmt.Sprintf("Question %d", order),
		Order:    order,
	}
	if err := tx.WithContext(ctx).Omit("Options").Create(c).Error; err != nil {
		tb.Fatalf("seed challenge: %v", err)
	}
	opts := []*types.ChallengeOption{
		{ChallengeID: c.ID, Text: "right", Correct: true},
		{ChallengeID: c.ID, Text: "wrong", Correct: false},
	}
	if err := tx.WithContext(ctx).Create(&opts).Error; err != nil {
		tb.Fatalf("seed challenge options: %v", err)
	}
	c.Options = opts
	return c
}

func SeedUserProgress(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, courseID *uuid.UUID, hearts, points int) *types.UserProgress {
	tb.Helper()
	up := &types.UserProgress{
		UserID:         userID,
		UserName:       types.DefaultUserName,
		UserImageSrc:   types.DefaultUserImageSrc,
		ActiveCourseID: courseID,
		Hearts:         hearts,
		Points:         points,
	}
	if err := tx.WithContext(ctx).Omit("ActiveCourse").Create(up).Error; err != nil {
		tb.Fatalf("seed user progress: %v", err)
	}
	return up
}

func SeedChallengeProgress(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID, completed bool) *types.ChallengeProgress {
	tb.Helper()
	cp := &types.ChallengeProgress{
		UserID:      userID,
		ChallengeID: challengeID,
		Completed:   completed,
	}
	if err := tx.WithContext(ctx).Create(cp).Error; err != nil {
		tb.Fatalf("seed challenge progress: %v", err)
	}
	return cp
}

func SeedSubscription(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, periodEnd time.Time) *types.UserSubscription {
	tb.Helper()
	s := &types.UserSubscription{
		UserID:                 userID,
		StripeCustomerID:       "cus_" + userID.String()[:8],
		StripeSubscriptionID:   "sub_" + userID.String()[:8],
		StripePriceID:          "price_test",
		StripeCurrentPeriodEnd: periodEnd,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed subscription: %v", err)
	}
	return s
}

// Curriculum is a course with two units of two lessons each, two challenges per lesson.
type Curriculum struct {
	Course     *types.Course
	Units      []*types.Unit
	Lessons    []*types.Lesson
	Challenges map[uuid.UUID][]*types.Challenge
}

func SeedCurriculum(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *Curriculum {
	tb.Helper()
	cur := &Curriculum{
		Course:     SeedCourse(tb, ctx, tx, title),
		Challenges: map[uuid.UUID][]*types.Challenge{},
	}
	for u := 1; u <= 2; u++ {
		unit := SeedUnit(tb, ctx, tx, cur.Course.ID, u)
		cur.Units = append(cur.Units, unit)
		for l := 1; l <= 2; l++ {
			lesson := SeedLesson(tb, ctx, tx, unit.ID, l)
			cur.Lessons = append(cur.Lessons, lesson)
			for c := 1; c <= 2; c++ {
				cur.Challenges[lesson.ID] = append(cur.Challenges[lesson.ID], SeedChallenge(tb, ctx, tx, lesson.ID, c))
			}
		}
	}
	return cur
}
