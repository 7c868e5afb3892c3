package learning

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/lingo-backend/internal/data/repos/testutil"
)

func TestCourseRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCourseRepo(db, testutil.Logger(t))

	cur := testutil.SeedCurriculum(t, ctx, tx, "spanish")
	testutil.SeedCourse(t, ctx, tx, "french")

	list, err := repo.List(ctx, tx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Title != "french" || list[1].Title != "spanish" {
		t.Fatalf("List: unexpected result: %+v", list)
	}

	got, err := repo.GetWithUnitsAndLessons(ctx, tx, cur.Course.ID)
	if err != nil {
		t.Fatalf("GetWithUnitsAndLessons: %v", err)
	}
	if got == nil || len(got.Units) != 2 {
		t.Fatalf("GetWithUnitsAndLessons: expected 2 units, got %+v", got)
	}
	if got.Units[0].ID != cur.Units[0].ID || got.Units[1].ID != cur.Units[1].ID {
		t.Fatalf("GetWithUnitsAndLessons: units out of order")
	}
	if len(got.Units[0].Lessons) != 2 || got.Units[0].Lessons[0].ID != cur.Lessons[0].ID {
		t.Fatalf("GetWithUnitsAndLessons: lessons out of order: %+v", got.Units[0].Lessons)
	}

	missing, err := repo.GetByID(ctx, tx, uuid.New())
	if err != nil {
		t.Fatalf("GetByID(missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID(missing): expected nil")
	}

	byTitle, err := repo.GetByTitle(ctx, tx, "spanish")
	if err != nil || byTitle == nil || byTitle.ID != cur.Course.ID {
		t.Fatalf("GetByTitle: got=%+v err=%v", byTitle, err)
	}
}

func TestUnitRepoTreeOrdering(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUnitRepo(db, testutil.Logger(t))

	course := testutil.SeedCourse(t, ctx, tx, "german")
	// Inserted out of order on purpose.
	second := testutil.SeedUnit(t, ctx, tx, course.ID, 2)
	first := testutil.SeedUnit(t, ctx, tx, course.ID, 1)
	lesson := testutil.SeedLesson(t, ctx, tx, first.ID, 1)
	c2 := testutil.SeedChallenge(t, ctx, tx, lesson.ID, 2)
	c1 := testutil.SeedChallenge(t, ctx, tx, lesson.ID, 1)

	units, err := repo.GetTreeByCourseID(ctx, tx, course.ID)
	if err != nil {
		t.Fatalf("GetTreeByCourseID: %v", err)
	}
	if len(units) != 2 || units[0].ID != first.ID || units[1].ID != second.ID {
		t.Fatalf("GetTreeByCourseID: units out of order")
	}
	if len(units[0].Lessons) != 1 {
		t.Fatalf("GetTreeByCourseID: expected 1 lesson, got %d", len(units[0].Lessons))
	}
	chs := units[0].Lessons[0].Challenges
	if len(chs) != 2 || chs[0].ID != c1.ID || chs[1].ID != c2.ID {
		t.Fatalf("GetTreeByCourseID: challenges out of order")
	}
}

func TestLessonAndChallengeRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)
	lessons := NewLessonRepo(db, log)
	challenges := NewChallengeRepo(db, log)

	cur := testutil.SeedCurriculum(t, ctx, tx, "italian")
	target := cur.Lessons[1]

	got, err := lessons.GetWithChallenges(ctx, tx, target.ID)
	if err != nil {
		t.Fatalf("GetWithChallenges: %v", err)
	}
	if got == nil || len(got.Challenges) != 2 {
		t.Fatalf("GetWithChallenges: expected 2 challenges, got %+v", got)
	}
	for _, ch := range got.Challenges {
		if len(ch.Options) != 2 {
			t.Fatalf("GetWithChallenges: expected 2 options, got %d", len(ch.Options))
		}
	}

	chID := cur.Challenges[target.ID][0].ID
	ch, err := challenges.GetWithOptions(ctx, tx, chID)
	if err != nil {
		t.Fatalf("GetWithOptions: %v", err)
	}
	if ch == nil || ch.CorrectOption() == nil || ch.CorrectOption().Text != "right" {
		t.Fatalf("GetWithOptions: unexpected challenge %+v", ch)
	}

	none, err := challenges.GetByID(ctx, tx, uuid.New())
	if err != nil || none != nil {
		t.Fatalf("GetByID(missing): got=%+v err=%v", none, err)
	}
}
