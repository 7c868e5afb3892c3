package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/lingo-backend/internal/http/handlers"
	httpMW "github.com/yungbote/lingo-backend/internal/http/middleware"
	"github.com/yungbote/lingo-backend/internal/observability"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	CORSOrigins    []string
	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler    *httpH.HealthHandler
	LearnHandler     *httpH.LearnHandler
	ChallengeHandler *httpH.ChallengeHandler
	CourseHandler    *httpH.CourseHandler
	ShopHandler      *httpH.ShopHandler
	StandingsHandler *httpH.StandingsHandler
	BillingHandler   *httpH.BillingHandler
	AvatarHandler    *httpH.AvatarHandler
	RealtimeHandler  *httpH.RealtimeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.RequestIDs())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		// Public
		if cfg.CourseHandler != nil {
			api.GET("/courses", cfg.CourseHandler.ListCourses)
			api.GET("/courses/:id", cfg.CourseHandler.GetCourse)
		}
		if cfg.AvatarHandler != nil {
			api.GET("/users/:id/avatar.png", cfg.AvatarHandler.GetAvatar)
		}
		if cfg.BillingHandler != nil {
			api.POST("/webhooks/stripe", cfg.BillingHandler.StripeWebhook)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Learn
		if cfg.LearnHandler != nil {
			protected.GET("/learn", cfg.LearnHandler.GetLearn)
			protected.GET("/lesson", cfg.LearnHandler.GetActiveLesson)
			protected.GET("/lessons/:id", cfg.LearnHandler.GetLesson)
			protected.GET("/user-progress", cfg.LearnHandler.GetUserProgress)
		}

		// Challenges
		if cfg.ChallengeHandler != nil {
			protected.POST("/challenges/:id/answer", cfg.ChallengeHandler.Answer)
			protected.POST("/challenges/:id/correct", cfg.ChallengeHandler.Correct)
			protected.POST("/challenges/:id/incorrect", cfg.ChallengeHandler.Incorrect)
		}

		// Course selection
		if cfg.CourseHandler != nil {
			protected.POST("/courses/:id/select", cfg.CourseHandler.SelectCourse)
		}

		// Shop
		if cfg.ShopHandler != nil {
			protected.POST("/shop/refill", cfg.ShopHandler.RefillHearts)
		}

		// Standings
		if cfg.StandingsHandler != nil {
			protected.GET("/leaderboard", cfg.StandingsHandler.GetLeaderboard)
			protected.GET("/quests", cfg.StandingsHandler.GetQuests)
			protected.GET("/subscription", cfg.StandingsHandler.GetSubscription)
		}

		// Billing
		if cfg.BillingHandler != nil {
			protected.POST("/billing/checkout", cfg.BillingHandler.Checkout)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			protected.GET("/events", cfg.RealtimeHandler.Stream)
		}
	}

	return r
}
