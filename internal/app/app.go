package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/lingo-backend/internal/data/cache"
	"github.com/yungbote/lingo-backend/internal/data/db"
	httpserver "github.com/yungbote/lingo-backend/internal/http"
	"github.com/yungbote/lingo-backend/internal/jobs"
	"github.com/yungbote/lingo-backend/internal/observability"
	"github.com/yungbote/lingo-backend/internal/platform/envutil"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/realtime"
	"github.com/yungbote/lingo-backend/internal/realtime/bus"
)

type App struct {
	Log       *logger.Logger
	DB        *gorm.DB
	Router    *gin.Engine
	Cfg       Config
	Repos     Repos
	Services  Services
	Hub       *realtime.Hub
	Bus       bus.Bus
	Cache     cache.ViewCache
	Metrics   *observability.Metrics
	Scheduler *jobs.Scheduler

	dbService    *db.Service
	redis        *goredis.Client
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New() (*App, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})
	metrics := observability.Init(log)

	dbService, err := db.NewService(log, cfg.DB)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := dbService.DB()

	rdb, eventBus, viewCache, err := wireRealtime(log, cfg)
	if err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}

	hub := realtime.NewHub(log)
	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(theDB, log, cfg, reposet, eventBus, viewCache, metrics)
	if err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(theDB, log, serviceset, hub)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, cfg, handlerset, middleware, metrics)

	scheduler, err := wireJobs(log, cfg, serviceset)
	if err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Hub:          hub,
		Bus:          eventBus,
		Cache:        viewCache,
		Metrics:      metrics,
		Scheduler:    scheduler,
		dbService:    dbService,
		redis:        rdb,
		otelShutdown: otelShutdown,
	}, nil
}

// wireRealtime picks Redis for the event bus and view cache when REDIS_ADDR is
// set, and in-process implementations otherwise.
func wireRealtime(log *logger.Logger, cfg Config) (*goredis.Client, bus.Bus, cache.ViewCache, error) {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set; using in-memory event bus and view cache")
		return nil, bus.NewMemoryBus(), cache.NewMemory(), nil
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	eventBus, err := bus.NewRedisBus(log, rdb, cfg.RedisChannel)
	if err != nil {
		_ = rdb.Close()
		return nil, nil, nil, fmt.Errorf("init redis bus: %w", err)
	}
	log.Info("Redis connected", "addr", cfg.RedisAddr, "channel", cfg.RedisChannel)
	return rdb, eventBus, cache.NewRedis(rdb, ""), nil
}

func wireJobs(log *logger.Logger, cfg Config, s Services) (*jobs.Scheduler, error) {
	registry := jobs.NewRegistry()
	for _, j := range []jobs.Job{
		&jobs.LeaderboardWarm{Leaderboard: s.Leaderboard, Interval: cfg.LeaderboardWarmInterval},
		&jobs.BillingEventPurge{
			Billing:   s.Billing,
			Log:       log.With("job", "billing_event_purge"),
			Retention: cfg.BillingEventRetention,
			Interval:  cfg.BillingEventPurgeInterval,
		},
	} {
		if err := registry.Register(j); err != nil {
			return nil, fmt.Errorf("register job: %w", err)
		}
	}
	return jobs.NewScheduler(log, registry), nil
}

// Start runs the background pieces: bus forwarders, scheduled jobs and collectors.
func (a *App) Start(ctx context.Context) error {
	if a == nil || a.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if err := a.Services.Invalidator.Start(ctx, a.Bus); err != nil {
		return fmt.Errorf("start cache invalidator: %w", err)
	}
	if err := a.Bus.StartForwarder(ctx, a.Hub.Broadcast); err != nil {
		return fmt.Errorf("start sse forwarder: %w", err)
	}
	if a.Scheduler != nil {
		if err := a.Scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}

	a.Metrics.StartDBCollector(ctx, a.Log, a.DB)
	a.Metrics.StartRedisCollector(ctx, a.Log, a.redis)
	a.Metrics.StartServer(ctx, a.Log, envutil.String("METRICS_ADDR", ""))
	return nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Server listening", "addr", addr)
	return (&httpserver.Server{Engine: a.Router}).Run(ctx, addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Bus != nil {
		_ = a.Bus.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.dbService != nil {
		_ = a.dbService.Close()
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = a.otelShutdown(ctx)
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
