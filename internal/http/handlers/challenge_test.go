package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainagg "github.com/yungbote/lingo-backend/internal/domain/aggregates"
	"github.com/yungbote/lingo-backend/internal/platform/ctxutil"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/services"
)

type stubGrader struct {
	result *services.GradeResult
	err    error
	gotUID uuid.UUID
	gotCID uuid.UUID
	gotOID uuid.UUID
}

func (s *stubGrader) SubmitAnswer(ctx context.Context, userID, challengeID, optionID uuid.UUID) (*services.GradeResult, error) {
	s.gotUID, s.gotCID, s.gotOID = userID, challengeID, optionID
	return s.result, s.err
}

func (s *stubGrader) SubmitCorrect(ctx context.Context, userID, challengeID uuid.UUID) (*services.GradeResult, error) {
	s.gotUID, s.gotCID = userID, challengeID
	return s.result, s.err
}

func (s *stubGrader) SubmitIncorrect(ctx context.Context, userID, challengeID uuid.UUID) (*services.GradeResult, error) {
	s.gotUID, s.gotCID = userID, challengeID
	return s.result, s.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	require.NoError(t, err)
	return log
}

func challengeRouter(t *testing.T, grader services.GraderService, userID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewChallengeHandler(testLogger(t), grader)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: userID})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	})
	r.POST("/api/challenges/:id/answer", h.Answer)
	r.POST("/api/challenges/:id/correct", h.Correct)
	r.POST("/api/challenges/:id/incorrect", h.Incorrect)
	return r
}

func TestChallengeIncorrectReportsHearts(t *testing.T) {
	userID := uuid.New()
	grader := &stubGrader{result: &services.GradeResult{HeartsExhausted: true}}
	r := challengeRouter(t, grader, userID)

	challengeID := uuid.New()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/challenges/"+challengeID.String()+"/incorrect", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error":"hearts"}`, w.Body.String())
	assert.Equal(t, userID, grader.gotUID)
	assert.Equal(t, challengeID, grader.gotCID)
}

func TestChallengeCorrectReturnsEmptyObject(t *testing.T) {
	r := challengeRouter(t, &stubGrader{result: &services.GradeResult{Points: 10}}, uuid.New())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/challenges/"+uuid.NewString()+"/correct", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestChallengeAnswerReportsVerdict(t *testing.T) {
	grader := &stubGrader{result: &services.GradeResult{Correct: true, Points: 10}}
	r := challengeRouter(t, grader, uuid.New())

	challengeID, optionID := uuid.New(), uuid.New()
	body := strings.NewReader(`{"option_id":"` + optionID.String() + `"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/challenges/"+challengeID.String()+"/answer", body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"correct":true}`, w.Body.String())
	assert.Equal(t, challengeID, grader.gotCID)
	assert.Equal(t, optionID, grader.gotOID)
}

func TestChallengeAnswerRequiresOption(t *testing.T) {
	for _, body := range []string{``, `{}`, `{"option_id":"nope"}`} {
		r := challengeRouter(t, &stubGrader{}, uuid.New())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/challenges/"+uuid.NewString()+"/answer", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

func TestChallengeBadID(t *testing.T) {
	r := challengeRouter(t, &stubGrader{}, uuid.New())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/challenges/not-a-uuid/correct", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChallengeErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized", services.ErrUnauthorized, http.StatusUnauthorized},
		{"missing challenge", domainagg.NotFound("progress.apply_correct", "challenge not found"), http.StatusNotFound},
		{"missing progress", domainagg.NotFound("progress.apply_correct", "user progress not found"), http.StatusNotFound},
		{"conflict", domainagg.NewError(domainagg.CodeConflict, "progress.apply_correct", "version changed", nil), http.StatusConflict},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := challengeRouter(t, &stubGrader{err: tc.err}, uuid.New())
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/challenges/"+uuid.NewString()+"/incorrect", nil))
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
