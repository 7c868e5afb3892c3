package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ViewCache stores rendered read views as JSON. A miss is (false, nil);
// errors are reserved for backend failures and callers treat them as misses.
//
// Every key carries a generation that Delete bumps. Read-through callers take
// Generation before loading and store with SetIfGeneration, so a load that
// raced an invalidation is dropped instead of cached.
type ViewCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Generation(ctx context.Context, key string) (uint64, error)
	SetIfGeneration(ctx context.Context, key string, gen uint64, val any, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

const keyPrefix = "view:"

func LearnKey(userID uuid.UUID) string  { return keyPrefix + "learn:" + userID.String() }
func LessonKey(userID uuid.UUID) string { return keyPrefix + "lesson:" + userID.String() }
func LessonByIDKey(userID, lessonID uuid.UUID) string {
	return keyPrefix + "lesson:" + userID.String() + ":" + lessonID.String()
}
func LeaderboardKey() string { return keyPrefix + "leaderboard" }

// UserViewKeys lists every cached view that depends on a user's progress.
// lessonID adds the explicit-lesson view when known.
func UserViewKeys(userID uuid.UUID, lessonID *uuid.UUID) []string {
	keys := []string{
		LearnKey(userID),
		LessonKey(userID),
		LeaderboardKey(),
	}
	if lessonID != nil && *lessonID != uuid.Nil {
		keys = append(keys, LessonByIDKey(userID, *lessonID))
	}
	return keys
}
