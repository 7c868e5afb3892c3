package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/lingo-backend/internal/http/response"
	"github.com/yungbote/lingo-backend/internal/platform/ctxutil"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/services"
)

type LearnHandler struct {
	log   *logger.Logger
	learn services.LearnService
}

func NewLearnHandler(log *logger.Logger, learn services.LearnService) *LearnHandler {
	return &LearnHandler{log: log.With("handler", "LearnHandler"), learn: learn}
}

// GET /api/learn
func (h *LearnHandler) GetLearn(c *gin.Context) {
	page, err := h.learn.Learn(c.Request.Context(), ctxutil.UserID(c.Request.Context()))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /api/lesson
func (h *LearnHandler) GetActiveLesson(c *gin.Context) {
	page, err := h.learn.Lesson(c.Request.Context(), ctxutil.UserID(c.Request.Context()), nil)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /api/lessons/:id
func (h *LearnHandler) GetLesson(c *gin.Context) {
	lessonID, err := uuidParam(c, "id")
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	page, err := h.learn.Lesson(c.Request.Context(), ctxutil.UserID(c.Request.Context()), &lessonID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /api/user-progress
func (h *LearnHandler) GetUserProgress(c *gin.Context) {
	up, err := h.learn.UserProgress(c.Request.Context(), ctxutil.UserID(c.Request.Context()))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user_progress": up})
}
