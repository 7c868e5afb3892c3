package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lingo-backend/internal/http/response"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/services"
)

type AvatarHandler struct {
	log     *logger.Logger
	avatars services.AvatarService
}

func NewAvatarHandler(log *logger.Logger, avatars services.AvatarService) *AvatarHandler {
	return &AvatarHandler{log: log.With("handler", "AvatarHandler"), avatars: avatars}
}

// GET /api/users/:id/avatar.png
func (h *AvatarHandler) GetAvatar(c *gin.Context) {
	userID, err := uuidParam(c, "id")
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	raw, err := h.avatars.GenerateUserAvatar(c.Request.Context(), userID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", raw)
}
