package progress

import (
	"testing"

	"pgregory.net/rapid"
)

func TestRestoreHeartIsCapped(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := DefaultRules()
		h := rapid.IntRange(0, r.MaxHearts).Draw(rt, "hearts")
		got := r.RestoreHeart(h)
		want := h + 1
		if want > r.MaxHearts {
			want = r.MaxHearts
		}
		if got != want {
			rt.Fatalf("RestoreHeart(%d): want=%d got=%d", h, want, got)
		}
	})
}

func TestLoseHeartIsFloored(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := DefaultRules()
		h := rapid.IntRange(0, r.MaxHearts).Draw(rt, "hearts")
		got := r.LoseHeart(h)
		want := h - 1
		if want < 0 {
			want = 0
		}
		if got != want {
			rt.Fatalf("LoseHeart(%d): want=%d got=%d", h, want, got)
		}
	})
}

func TestWithDefaults(t *testing.T) {
	r := Rules{MaxHearts: 3}.WithDefaults()
	if r.MaxHearts != 3 || r.PointsPerChallenge != 10 || r.PointsToRefill != 10 {
		t.Fatalf("WithDefaults: got %+v", r)
	}
}

func TestAllCompleted(t *testing.T) {
	if AllCompleted(nil) {
		t.Fatalf("AllCompleted(nil): expected false")
	}
	rows := []*ChallengeProgress{{Completed: true}, {Completed: false}}
	if AllCompleted(rows) {
		t.Fatalf("AllCompleted(mixed): expected false")
	}
	if !AllCompleted(rows[:1]) {
		t.Fatalf("AllCompleted(completed): expected true")
	}
}
