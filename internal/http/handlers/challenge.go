package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/lingo-backend/internal/http/response"
	"github.com/yungbote/lingo-backend/internal/platform/apierr"
	"github.com/yungbote/lingo-backend/internal/platform/ctxutil"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/services"
)

type ChallengeHandler struct {
	log    *logger.Logger
	grader services.GraderService
}

func NewChallengeHandler(log *logger.Logger, grader services.GraderService) *ChallengeHandler {
	return &ChallengeHandler{log: log.With("handler", "ChallengeHandler"), grader: grader}
}

type submitFunc func(c *gin.Context, userID, challengeID uuid.UUID) (*services.GradeResult, error)

type answerRequest struct {
	OptionID uuid.UUID `json:"option_id"`
}

// POST /api/challenges/:id/answer
func (h *ChallengeHandler) Answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, apierr.BadRequest(err))
		return
	}
	if req.OptionID == uuid.Nil {
		response.RespondErr(c, apierr.BadRequest(errors.New("invalid option_id")))
		return
	}
	h.submit(c, func(c *gin.Context, userID, challengeID uuid.UUID) (*services.GradeResult, error) {
		return h.grader.SubmitAnswer(c.Request.Context(), userID, challengeID, req.OptionID)
	}, true)
}

// POST /api/challenges/:id/correct
func (h *ChallengeHandler) Correct(c *gin.Context) {
	h.submit(c, func(c *gin.Context, userID, challengeID uuid.UUID) (*services.GradeResult, error) {
		return h.grader.SubmitCorrect(c.Request.Context(), userID, challengeID)
	}, false)
}

// POST /api/challenges/:id/incorrect
func (h *ChallengeHandler) Incorrect(c *gin.Context) {
	h.submit(c, func(c *gin.Context, userID, challengeID uuid.UUID) (*services.GradeResult, error) {
		return h.grader.SubmitIncorrect(c.Request.Context(), userID, challengeID)
	}, false)
}

// submit answers {} on success and {"error":"hearts"} when the user is out of hearts.
// With withVerdict the success body is {"correct":bool}.
func (h *ChallengeHandler) submit(c *gin.Context, fn submitFunc, withVerdict bool) {
	challengeID, err := uuidParam(c, "id")
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	res, err := fn(c, ctxutil.UserID(c.Request.Context()), challengeID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	if res.HeartsExhausted {
		response.RespondOK(c, gin.H{"error": "hearts"})
		return
	}
	if withVerdict {
		response.RespondOK(c, gin.H{"correct": res.Correct})
		return
	}
	response.RespondOK(c, gin.H{})
}
