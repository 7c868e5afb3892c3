package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/lingo-backend/internal/data/cache"
	"github.com/yungbote/lingo-backend/internal/data/repos"
	"github.com/yungbote/lingo-backend/internal/observability"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
)

const leaderboardSize = 10

type LeaderboardEntry struct {
	Rank         int       `json:"rank"`
	UserID       uuid.UUID `json:"user_id"`
	UserName     string    `json:"user_name"`
	UserImageSrc string    `json:"user_image_src"`
	Points       int       `json:"points"`
}

type LeaderboardService interface {
	TopTen(ctx context.Context) ([]*LeaderboardEntry, error)
	// Warm recomputes the cached top ten.
	Warm(ctx context.Context) error
}

type leaderboardService struct {
	log      *logger.Logger
	progress repos.UserProgressRepo
	cache    cache.ViewCache
	ttl      time.Duration
}

func NewLeaderboardService(log *logger.Logger, progress repos.UserProgressRepo, viewCache cache.ViewCache, ttl time.Duration) LeaderboardService {
	return &leaderboardService{
		log:      log.With("service", "LeaderboardService"),
		progress: progress,
		cache:    viewCache,
		ttl:      ttl,
	}
}

func (s *leaderboardService) TopTen(ctx context.Context) ([]*LeaderboardEntry, error) {
	if s.cache != nil {
		var cached []*LeaderboardEntry
		hit, err := s.cache.Get(ctx, cache.LeaderboardKey(), &cached)
		if err != nil {
			s.log.Warn("leaderboard cache read failed", "error", err)
		}
		observability.Current().IncCacheLookup(hit)
		if hit {
			return cached, nil
		}
	}
	return s.load(ctx)
}

func (s *leaderboardService) Warm(ctx context.Context) error {
	_, err := s.load(ctx)
	return err
}

func (s *leaderboardService) load(ctx context.Context) ([]*LeaderboardEntry, error) {
	var (
		gen       uint64
		cacheable bool
	)
	if s.cache != nil {
		var err error
		if gen, err = s.cache.Generation(ctx, cache.LeaderboardKey()); err != nil {
			s.log.Warn("leaderboard cache generation read failed", "error", err)
		} else {
			cacheable = true
		}
	}

	rows, err := s.progress.TopByPoints(ctx, nil, leaderboardSize)
	if err != nil {
		return nil, err
	}
	out := make([]*LeaderboardEntry, 0, len(rows))
	for i, up := range rows {
		out = append(out, &LeaderboardEntry{
			Rank:         i + 1,
			UserID:       up.UserID,
			UserName:     up.UserName,
			UserImageSrc: up.UserImageSrc,
			Points:       up.Points,
		})
	}
	if cacheable {
		if _, err := s.cache.SetIfGeneration(ctx, cache.LeaderboardKey(), gen, out, s.ttl); err != nil {
			s.log.Warn("leaderboard cache write failed", "error", err)
		}
	}
	return out, nil
}
