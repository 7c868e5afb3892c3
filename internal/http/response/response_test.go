package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/lingo-backend/internal/domain/aggregates"
	"github.com/yungbote/lingo-backend/internal/platform/apierr"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{apierr.NotFound(errors.New("x")), http.StatusNotFound},
		{domainagg.Validation("op", "bad"), http.StatusBadRequest},
		{domainagg.NewError(domainagg.CodeInvariantViolation, "op", "bad", nil), http.StatusBadRequest},
		{domainagg.NotFound("op", "missing"), http.StatusNotFound},
		{domainagg.NewError(domainagg.CodeRetryable, "op", "again", nil), http.StatusConflict},
		{domainagg.NewError(domainagg.CodePreconditionFailed, "op", "no", nil), http.StatusPreconditionFailed},
		{fmt.Errorf("wrapped: %w", domainagg.NotFound("op", "missing")), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got, _ := Classify(tc.err); got != tc.want {
			t.Fatalf("Classify(%v): want=%d got=%d", tc.err, tc.want, got)
		}
	}
}

func TestRespondErrHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondErr(c, errors.New("pq: password authentication failed"))

	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error.Message != "internal server error" {
		t.Fatalf("message: want=internal server error got=%q", env.Error.Message)
	}
}

func TestRespondErrUsesAggregateMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondErr(c, domainagg.NotFound("progress.apply_correct", "challenge not found"))

	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != http.StatusNotFound || env.Error.Message != "challenge not found" {
		t.Fatalf("want 404 challenge not found, got %d %q", w.Code, env.Error.Message)
	}
}
