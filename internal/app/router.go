package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/yungbote/lingo-backend/internal/http"
	"github.com/yungbote/lingo-backend/internal/observability"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
)

const serviceName = "lingo-backend"

func wireRouter(log *logger.Logger, cfg Config, h Handlers, mw Middleware, metrics *observability.Metrics) *gin.Engine {
	log.Info("Wiring router...")
	return httpserver.NewRouter(httpserver.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		ServiceName:      serviceName,
		CORSOrigins:      cfg.CORSOrigins,
		AuthMiddleware:   mw.Auth,
		HealthHandler:    h.Health,
		LearnHandler:     h.Learn,
		ChallengeHandler: h.Challenge,
		CourseHandler:    h.Course,
		ShopHandler:      h.Shop,
		StandingsHandler: h.Standings,
		BillingHandler:   h.Billing,
		AvatarHandler:    h.Avatar,
		RealtimeHandler:  h.Realtime,
	})
}
