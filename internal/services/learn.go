package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/lingo-backend/internal/data/cache"
	types "github.com/yungbote/lingo-backend/internal/domain"
	"github.com/yungbote/lingo-backend/internal/observability"
	"github.com/yungbote/lingo-backend/internal/platform/apierr"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
)

var ErrNoActiveCourse = apierr.NotFound(errors.New("no active course"))

type LearnPage struct {
	UserProgress           *types.UserProgress `json:"user_progress"`
	Subscription           *SubscriptionStatus `json:"subscription"`
	Units                  []*UnitView         `json:"units"`
	ActiveLesson           *LessonView         `json:"active_lesson"`
	ActiveLessonPercentage int                 `json:"active_lesson_percentage"`
	Quests                 []*Quest            `json:"quests"`
}

type LessonPage struct {
	Lesson       *LessonView         `json:"lesson"`
	Hearts       int                 `json:"hearts"`
	Points       int                 `json:"points"`
	Subscription *SubscriptionStatus `json:"subscription"`
}

// learnSnapshot is the cacheable, progress-derived part of the learn page.
// Subscription status is recomputed on every read and never cached.
type learnSnapshot struct {
	UserProgress *types.UserProgress `json:"user_progress"`
	Units        []*UnitView         `json:"units"`
	ActiveLesson *LessonView         `json:"active_lesson"`
}

type LearnService interface {
	Learn(ctx context.Context, userID uuid.UUID) (*LearnPage, error)
	Lesson(ctx context.Context, userID uuid.UUID, lessonID *uuid.UUID) (*LessonPage, error)
	UserProgress(ctx context.Context, userID uuid.UUID) (*types.UserProgress, error)
}

type learnService struct {
	log           *logger.Logger
	resolver      ProgressResolver
	subscriptions SubscriptionService
	cache         cache.ViewCache
	ttl           time.Duration
}

func NewLearnService(log *logger.Logger, resolver ProgressResolver, subscriptions SubscriptionService, viewCache cache.ViewCache, ttl time.Duration) LearnService {
	return &learnService{
		log:           log.With("service", "LearnService"),
		resolver:      resolver,
		subscriptions: subscriptions,
		cache:         viewCache,
		ttl:           ttl,
	}
}

func (s *learnService) UserProgress(ctx context.Context, userID uuid.UUID) (*types.UserProgress, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	up, err := s.resolver.UserProgress(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if up == nil {
		return nil, apierr.NotFound(errNotFound("user progress"))
	}
	return up, nil
}

func (s *learnService) Learn(ctx context.Context, userID uuid.UUID) (*LearnPage, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	var (
		snap   *learnSnapshot
		status *SubscriptionStatus
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = s.learnSnapshot(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		status, err = s.subscriptions.Status(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	page := &LearnPage{
		UserProgress: snap.UserProgress,
		Subscription: status,
		Units:        snap.Units,
		ActiveLesson: snap.ActiveLesson,
		Quests:       QuestsFor(snap.UserProgress.Points),
	}
	if snap.ActiveLesson != nil {
		page.ActiveLessonPercentage = snap.ActiveLesson.Percentage
	}
	return page, nil
}

func (s *learnService) learnSnapshot(ctx context.Context, userID uuid.UUID) (*learnSnapshot, error) {
	key := cache.LearnKey(userID)
	var cached learnSnapshot
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}
	gen, cacheable := s.cacheGeneration(ctx, key)

	scope := NewReadScope()
	up, err := s.resolver.UserProgress(ctx, scope, userID)
	if err != nil {
		return nil, err
	}
	if up == nil || up.ActiveCourseID == nil {
		return nil, ErrNoActiveCourse
	}

	snap := &learnSnapshot{UserProgress: up}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Units, err = s.resolver.Units(gctx, scope, userID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.ActiveLesson, err = s.resolver.LessonView(gctx, scope, userID, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if cacheable {
		s.cacheSet(ctx, key, gen, snap)
	}
	return snap, nil
}

func (s *learnService) Lesson(ctx context.Context, userID uuid.UUID, lessonID *uuid.UUID) (*LessonPage, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	key := cache.LessonKey(userID)
	if lessonID != nil && *lessonID != uuid.Nil {
		key = cache.LessonByIDKey(userID, *lessonID)
	}
	gen, cacheable := s.cacheGeneration(ctx, key)

	scope := NewReadScope()
	up, err := s.resolver.UserProgress(ctx, scope, userID)
	if err != nil {
		return nil, err
	}
	if up == nil {
		return nil, apierr.NotFound(errNotFound("user progress"))
	}

	var lv *LessonView
	var cached LessonView
	if s.cacheGet(ctx, key, &cached) {
		lv = &cached
	} else {
		lv, err = s.resolver.LessonView(ctx, scope, userID, lessonID)
		if err != nil {
			return nil, err
		}
		if lv == nil {
			return nil, apierr.NotFound(errNotFound("lesson"))
		}
		if cacheable {
			s.cacheSet(ctx, key, gen, lv)
		}
	}

	status, err := s.subscriptions.Status(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &LessonPage{Lesson: lv, Hearts: up.Hearts, Points: up.Points, Subscription: status}, nil
}

func (s *learnService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.log.Warn("view cache read failed", "key", key, "error", err)
		hit = false
	}
	observability.Current().IncCacheLookup(hit)
	return hit
}

// cacheGeneration must be read before the views it guards are loaded.
func (s *learnService) cacheGeneration(ctx context.Context, key string) (uint64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.Generation(ctx, key)
	if err != nil {
		s.log.Warn("view cache generation read failed", "key", key, "error", err)
		return 0, false
	}
	return gen, true
}

func (s *learnService) cacheSet(ctx context.Context, key string, gen uint64, val any) {
	stored, err := s.cache.SetIfGeneration(ctx, key, gen, val, s.ttl)
	if err != nil {
		s.log.Warn("view cache write failed", "key", key, "error", err)
		return
	}
	if !stored {
		s.log.Debug("view cache fill skipped after invalidation", "key", key)
	}
}
