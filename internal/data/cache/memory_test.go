package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type view struct {
	Hearts int `json:"hearts"`
}

func TestMemoryCacheRoundTripAndDelete(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	key := LearnKey(uuid.New())

	var got view
	if hit, err := c.Get(ctx, key, &got); err != nil || hit {
		t.Fatalf("Get(empty): hit=%v err=%v", hit, err)
	}
	if err := c.Set(ctx, key, view{Hearts: 3}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if hit, err := c.Get(ctx, key, &got); err != nil || !hit || got.Hearts != 3 {
		t.Fatalf("Get: hit=%v err=%v got=%+v", hit, err, got)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if hit, _ := c.Get(ctx, key, &got); hit {
		t.Fatalf("Get after Delete: expected miss")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newMemoryCache(func() time.Time { return now })
	ctx := context.Background()

	if err := c.Set(ctx, LeaderboardKey(), view{Hearts: 1}, time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	now = now.Add(2 * time.Second)
	var got view
	if hit, _ := c.Get(ctx, LeaderboardKey(), &got); hit {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestUserViewKeys(t *testing.T) {
	user, lesson := uuid.New(), uuid.New()
	if n := len(UserViewKeys(user, nil)); n != 3 {
		t.Fatalf("keys without lesson: want=3 got=%d", n)
	}
	keys := UserViewKeys(user, &lesson)
	if len(keys) != 4 || keys[3] != LessonByIDKey(user, lesson) {
		t.Fatalf("keys with lesson: %v", keys)
	}
}

func TestMemoryCacheDropsFillThatRacedDelete(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	key := LearnKey(uuid.New())

	gen, err := c.Generation(ctx, key)
	if err != nil {
		t.Fatalf("Generation: %v", err)
	}
	// An invalidation lands between the load and the fill.
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	stored, err := c.SetIfGeneration(ctx, key, gen, view{Hearts: 5}, time.Minute)
	if err != nil || stored {
		t.Fatalf("stale fill: want stored=false got stored=%v err=%v", stored, err)
	}
	var got view
	if hit, _ := c.Get(ctx, key, &got); hit {
		t.Fatalf("stale snapshot must not be cached, got %+v", got)
	}

	gen, _ = c.Generation(ctx, key)
	stored, err = c.SetIfGeneration(ctx, key, gen, view{Hearts: 4}, time.Minute)
	if err != nil || !stored {
		t.Fatalf("fresh fill: want stored=true got stored=%v err=%v", stored, err)
	}
	if hit, _ := c.Get(ctx, key, &got); !hit || got.Hearts != 4 {
		t.Fatalf("fresh fill: hit=%v got=%+v", hit, got)
	}
}
