package progress

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/lingo-backend/internal/data/repos/testutil"
)

func TestUserProgressRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserProgressRepo(db, testutil.Logger(t))

	course := testutil.SeedCourse(t, ctx, tx, "spanish")
	userID := uuid.New()
	testutil.SeedUserProgress(t, ctx, tx, userID, &course.ID, 5, 30)

	got, err := repo.GetWithActiveCourse(ctx, tx, userID)
	if err != nil {
		t.Fatalf("GetWithActiveCourse: %v", err)
	}
	if got == nil || got.ActiveCourse == nil || got.ActiveCourse.ID != course.ID {
		t.Fatalf("GetWithActiveCourse: active course not loaded: %+v", got)
	}

	got, err = repo.GetByUserID(ctx, tx, userID)
	if err != nil || got == nil || got.Points != 30 {
		t.Fatalf("GetByUserID: got=%+v err=%v", got, err)
	}

	missing, err := repo.GetByUserID(ctx, tx, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("GetByUserID(missing): got=%+v err=%v", missing, err)
	}
}

func TestUserProgressRepoTopByPoints(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserProgressRepo(db, testutil.Logger(t))

	for i := 0; i < 12; i++ {
		testutil.SeedUserProgress(t, ctx, tx, uuid.New(), nil, 5, i*10)
	}

	top, err := repo.TopByPoints(ctx, tx, 10)
	if err != nil {
		t.Fatalf("TopByPoints: %v", err)
	}
	if len(top) != 10 {
		t.Fatalf("TopByPoints: want=10 got=%d", len(top))
	}
	if top[0].Points != 110 || top[9].Points != 20 {
		t.Fatalf("TopByPoints: unexpected ordering first=%d last=%d", top[0].Points, top[9].Points)
	}
	for i := 1; i < len(top); i++ {
		if top[i-1].Points < top[i].Points {
			t.Fatalf("TopByPoints: not descending at %d", i)
		}
	}
}

func TestChallengeProgressRepoMarkCompleted(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewChallengeProgressRepo(db, testutil.Logger(t))

	cur := testutil.SeedCurriculum(t, ctx, tx, "spanish")
	userID := uuid.New()
	ch := cur.Challenges[cur.Lessons[0].ID][0]

	exists, err := repo.Exists(ctx, tx, userID, ch.ID)
	if err != nil || exists {
		t.Fatalf("Exists(before): got=%v err=%v", exists, err)
	}

	if err := repo.MarkCompleted(ctx, tx, userID, ch.ID); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if err := repo.MarkCompleted(ctx, tx, userID, ch.ID); err != nil {
		t.Fatalf("MarkCompleted(again): %v", err)
	}

	rows, err := repo.GetByUserAndChallenge(ctx, tx, userID, ch.ID)
	if err != nil {
		t.Fatalf("GetByUserAndChallenge: %v", err)
	}
	if len(rows) != 1 || !rows[0].Completed {
		t.Fatalf("MarkCompleted: expected one completed row, got %+v", rows)
	}

	other := cur.Challenges[cur.Lessons[0].ID][1]
	testutil.SeedChallengeProgress(t, ctx, tx, userID, other.ID, false)
	if err := repo.MarkCompleted(ctx, tx, userID, other.ID); err != nil {
		t.Fatalf("MarkCompleted(incomplete row): %v", err)
	}
	rows, err = repo.GetByUserAndChallengeIDs(ctx, tx, userID, []uuid.UUID{ch.ID, other.ID})
	if err != nil {
		t.Fatalf("GetByUserAndChallengeIDs: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("GetByUserAndChallengeIDs: want=2 got=%d", len(rows))
	}
	for _, r := range rows {
		if !r.Completed {
			t.Fatalf("MarkCompleted: row %s not completed", r.ChallengeID)
		}
	}
}
