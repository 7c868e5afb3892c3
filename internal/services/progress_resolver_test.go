package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/lingo-backend/internal/data/repos/testutil"
	types "github.com/yungbote/lingo-backend/internal/domain"
)

func TestResolveActiveLessonWithoutActiveCourse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	got, err := env.resolver().ResolveActiveLesson(ctx, nil, userID)
	if err != nil || got != nil {
		t.Fatalf("no progress: want nil,nil got %v,%v", got, err)
	}

	testutil.SeedUserProgress(t, ctx, env.db, userID, nil, 5, 0)
	got, err = env.resolver().ResolveActiveLesson(ctx, nil, userID)
	if err != nil || got != nil {
		t.Fatalf("no active course: want nil,nil got %v,%v", got, err)
	}
}

func TestResolveActiveLessonFollowsCurriculumOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cur := testutil.SeedCurriculum(t, ctx, env.db, "Spanish")
	userID := uuid.New()
	testutil.SeedUserProgress(t, ctx, env.db, userID, &cur.Course.ID, 5, 0)
	r := env.resolver()

	got, err := r.ResolveActiveLesson(ctx, nil, userID)
	if err != nil {
		t.Fatalf("ResolveActiveLesson: %v", err)
	}
	if got == nil || got.ID != cur.Lessons[0].ID {
		t.Fatalf("fresh user: want first lesson got %v", got)
	}

	for _, ch := range cur.Challenges[cur.Lessons[0].ID] {
		testutil.SeedChallengeProgress(t, ctx, env.db, userID, ch.ID, true)
	}
	got, _ = r.ResolveActiveLesson(ctx, nil, userID)
	if got == nil || got.ID != cur.Lessons[1].ID {
		t.Fatalf("after lesson 1: want lesson 2 got %v", got)
	}

	// An uncompleted row keeps the lesson active.
	testutil.SeedChallengeProgress(t, ctx, env.db, userID, cur.Challenges[cur.Lessons[1].ID][0].ID, false)
	got, _ = r.ResolveActiveLesson(ctx, nil, userID)
	if got == nil || got.ID != cur.Lessons[1].ID {
		t.Fatalf("incomplete row: want lesson 2 got %v", got)
	}
}

func TestResolveActiveLessonNilWhenEverythingCompleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cur := testutil.SeedCurriculum(t, ctx, env.db, "French")
	userID := uuid.New()
	testutil.SeedUserProgress(t, ctx, env.db, userID, &cur.Course.ID, 5, 0)
	for _, chs := range cur.Challenges {
		for _, ch := range chs {
			testutil.SeedChallengeProgress(t, ctx, env.db, userID, ch.ID, true)
		}
	}
	got, err := env.resolver().ResolveActiveLesson(ctx, nil, userID)
	if err != nil || got != nil {
		t.Fatalf("all completed: want nil,nil got %v,%v", got, err)
	}
}

func TestLessonViewAnnotatesChallenges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cur := testutil.SeedCurriculum(t, ctx, env.db, "Italian")
	userID := uuid.New()
	testutil.SeedUserProgress(t, ctx, env.db, userID, &cur.Course.ID, 5, 0)
	first := cur.Lessons[0]
	testutil.SeedChallengeProgress(t, ctx, env.db, userID, cur.Challenges[first.ID][0].ID, true)

	view, err := env.resolver().LessonView(ctx, nil, userID, nil)
	if err != nil {
		t.Fatalf("LessonView: %v", err)
	}
	if view == nil || view.ID != first.ID {
		t.Fatalf("LessonView: want active lesson %s got %v", first.ID, view)
	}
	if len(view.Challenges) != 2 || !view.Challenges[0].Completed || view.Challenges[1].Completed {
		t.Fatalf("annotations: %+v", view.Challenges)
	}
	if len(view.Challenges[0].Options) != 2 {
		t.Fatalf("options: want=2 got=%d", len(view.Challenges[0].Options))
	}
	if view.Percentage != 50 {
		t.Fatalf("percentage: want=50 got=%d", view.Percentage)
	}

	explicit := cur.Lessons[3].ID
	view, err = env.resolver().LessonView(ctx, nil, userID, &explicit)
	if err != nil || view == nil || view.ID != explicit || view.Percentage != 0 {
		t.Fatalf("explicit lesson: view=%+v err=%v", view, err)
	}

	missing := uuid.New()
	view, err = env.resolver().LessonView(ctx, nil, userID, &missing)
	if err != nil || view != nil {
		t.Fatalf("missing lesson: want nil,nil got %v,%v", view, err)
	}
}

func TestUnitsFlagsCompletedLessons(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cur := testutil.SeedCurriculum(t, ctx, env.db, "German")
	empty := testutil.SeedLesson(t, ctx, env.db, cur.Units[1].ID, 3)
	userID := uuid.New()
	testutil.SeedUserProgress(t, ctx, env.db, userID, &cur.Course.ID, 5, 0)
	for _, ch := range cur.Challenges[cur.Lessons[0].ID] {
		testutil.SeedChallengeProgress(t, ctx, env.db, userID, ch.ID, true)
	}

	units, err := env.resolver().Units(ctx, nil, userID)
	if err != nil {
		t.Fatalf("Units: %v", err)
	}
	if len(units) != 2 || len(units[0].Lessons) != 2 || len(units[1].Lessons) != 3 {
		t.Fatalf("shape: %+v", units)
	}
	if !units[0].Lessons[0].Completed || units[0].Lessons[1].Completed {
		t.Fatalf("unit 1 completion: %+v %+v", units[0].Lessons[0], units[0].Lessons[1])
	}
	last := units[1].Lessons[2]
	if last.ID != empty.ID || last.Completed {
		t.Fatalf("lesson without challenges must not be completed: %+v", last)
	}
}

func TestLessonPercentage(t *testing.T) {
	mk := func(done ...bool) []*ChallengeView {
		out := make([]*ChallengeView, 0, len(done))
		for _, d := range done {
			out = append(out, &ChallengeView{Challenge: &types.Challenge{ID: uuid.New()}, Completed: d})
		}
		return out
	}
	cases := []struct {
		name string
		in   []*ChallengeView
		want int
	}{
		{"empty", nil, 0},
		{"none", mk(false, false), 0},
		{"all", mk(true, true, true), 100},
		{"one third rounds down", mk(true, false, false), 33},
		{"two thirds rounds up", mk(true, true, false), 67},
	}
	for _, tc := range cases {
		if got := LessonPercentage(tc.in); got != tc.want {
			t.Fatalf("%s: want=%d got=%d", tc.name, tc.want, got)
		}
	}
}

func TestAnnotateChallengesRequiresAllRowsCompleted(t *testing.T) {
	a := &types.Challenge{ID: uuid.New()}
	b := &types.Challenge{ID: uuid.New()}
	c := &types.Challenge{ID: uuid.New()}
	lesson := &types.Lesson{Challenges: []*types.Challenge{a, b, c}}
	rows := map[uuid.UUID][]*types.ChallengeProgress{
		a.ID: {{Completed: true}},
		b.ID: {{Completed: true}, {Completed: false}},
	}
	got := AnnotateChallenges(lesson, rows)
	if !got[0].Completed || got[1].Completed || got[2].Completed {
		t.Fatalf("annotations: %v %v %v", got[0].Completed, got[1].Completed, got[2].Completed)
	}
}

func TestReadScopeLoadsOncePerKey(t *testing.T) {
	scope := NewReadScope()
	var calls int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := scoped(scope, "k", func() (int, error) {
				atomic.AddInt32(&calls, 1)
				return 42, nil
			})
			if err != nil || v != 42 {
				t.Errorf("scoped: v=%d err=%v", v, err)
			}
		}()
	}
	wg.Wait()
	if calls != 1 {
		t.Fatalf("calls: want=1 got=%d", calls)
	}

	n := 0
	for i := 0; i < 2; i++ {
		_, _ = scoped[int](nil, "k", func() (int, error) { n++; return n, nil })
	}
	if n != 2 {
		t.Fatalf("nil scope must not memoize: calls=%d", n)
	}
}
