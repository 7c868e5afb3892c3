package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/lingo-backend/internal/http/response"
	"github.com/yungbote/lingo-backend/internal/platform/ctxutil"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/services"
)

// StandingsHandler serves the read-only gamification views: leaderboard, quests and subscription.
type StandingsHandler struct {
	log           *logger.Logger
	leaderboard   services.LeaderboardService
	quests        services.QuestService
	subscriptions services.SubscriptionService
}

func NewStandingsHandler(
	log *logger.Logger,
	leaderboard services.LeaderboardService,
	quests services.QuestService,
	subscriptions services.SubscriptionService,
) *StandingsHandler {
	return &StandingsHandler{
		log:           log.With("handler", "StandingsHandler"),
		leaderboard:   leaderboard,
		quests:        quests,
		subscriptions: subscriptions,
	}
}

// GET /api/leaderboard
func (h *StandingsHandler) GetLeaderboard(c *gin.Context) {
	top, err := h.leaderboard.TopTen(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"leaderboard": top})
}

// GET /api/quests
func (h *StandingsHandler) GetQuests(c *gin.Context) {
	quests, err := h.quests.ForUser(c.Request.Context(), ctxutil.UserID(c.Request.Context()))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"quests": quests})
}

// GET /api/subscription
func (h *StandingsHandler) GetSubscription(c *gin.Context) {
	status, err := h.subscriptions.Status(c.Request.Context(), ctxutil.UserID(c.Request.Context()))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"subscription": status})
}
