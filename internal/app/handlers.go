package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/lingo-backend/internal/http/handlers"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/realtime"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Learn     *httpH.LearnHandler
	Challenge *httpH.ChallengeHandler
	Course    *httpH.CourseHandler
	Shop      *httpH.ShopHandler
	Standings *httpH.StandingsHandler
	Billing   *httpH.BillingHandler
	Avatar    *httpH.AvatarHandler
	Realtime  *httpH.RealtimeHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, s Services, hub *realtime.Hub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(db),
		Learn:     httpH.NewLearnHandler(log, s.Learn),
		Challenge: httpH.NewChallengeHandler(log, s.Grader),
		Course:    httpH.NewCourseHandler(log, s.Course),
		Shop:      httpH.NewShopHandler(log, s.Shop),
		Standings: httpH.NewStandingsHandler(log, s.Leaderboard, s.Quests, s.Subscription),
		Billing:   httpH.NewBillingHandler(log, s.Billing),
		Avatar:    httpH.NewAvatarHandler(log, s.Avatar),
		Realtime:  httpH.NewRealtimeHandler(log, hub),
	}
}
