package app

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/lingo-backend/internal/data/aggregates"
	"github.com/yungbote/lingo-backend/internal/data/cache"
	domainagg "github.com/yungbote/lingo-backend/internal/domain/aggregates"
	"github.com/yungbote/lingo-backend/internal/observability"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/platform/stripeclient"
	"github.com/yungbote/lingo-backend/internal/realtime/bus"
	"github.com/yungbote/lingo-backend/internal/services"
)

type Services struct {
	Progress domainagg.ProgressAggregate

	Publisher    services.EventPublisher
	Resolver     services.ProgressResolver
	Auth         services.AuthService
	Grader       services.GraderService
	Course       services.CourseService
	Shop         services.ShopService
	Subscription services.SubscriptionService
	Leaderboard  services.LeaderboardService
	Quests       services.QuestService
	Learn        services.LearnService
	Billing      services.BillingService
	Avatar       services.AvatarService
	Invalidator  *services.CacheInvalidator
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, b bus.Bus, viewCache cache.ViewCache, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	progress := aggregates.NewProgressAggregate(aggregates.ProgressAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:    db,
			Log:   log,
			Hooks: aggregates.NewObservabilityHooks(metrics),
		},
		Rules:             cfg.Rules,
		Progress:          r.UserProgress,
		ChallengeProgress: r.ChallengeProgress,
		Challenges:        r.Challenge,
		Courses:           r.Course,
		Subscriptions:     r.UserSubscription,
	})

	publisher := services.NewEventPublisher(log, b)
	resolver := services.NewProgressResolver(log, r.UserProgress, r.ChallengeProgress, r.Unit, r.Lesson)
	subscriptions := services.NewSubscriptionService(log, r.UserSubscription, time.Now)

	stripe, err := stripeclient.New(cfg.Stripe)
	if err != nil && !errors.Is(err, stripeclient.ErrNotConfigured) {
		return Services{}, fmt.Errorf("init stripe: %w", err)
	}

	avatars, err := services.NewAvatarService(log, r.UserProgress)
	if err != nil {
		return Services{}, fmt.Errorf("init avatar service: %w", err)
	}

	return Services{
		Progress:     progress,
		Publisher:    publisher,
		Resolver:     resolver,
		Auth:         services.NewAuthService(log, cfg.JWTSecretKey),
		Grader:       services.NewGraderService(log, r.Challenge, progress, publisher),
		Course:       services.NewCourseService(log, r.Course, progress, publisher),
		Shop:         services.NewShopService(log, progress, publisher),
		Subscription: subscriptions,
		Leaderboard:  services.NewLeaderboardService(log, r.UserProgress, viewCache, cfg.ViewCacheTTL),
		Quests:       services.NewQuestService(log, r.UserProgress),
		Learn:        services.NewLearnService(log, resolver, subscriptions, viewCache, cfg.ViewCacheTTL),
		Billing:      services.NewBillingService(db, log, r.UserSubscription, r.BillingEvent, stripe, publisher, cfg.AppURL),
		Avatar:       avatars,
		Invalidator:  services.NewCacheInvalidator(log, viewCache),
	}, nil
}
