package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/lingo-backend/internal/domain/aggregates"
	"github.com/yungbote/lingo-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondErr maps service and aggregate errors onto HTTP statuses.
// Anything unrecognised is a 500 with a generic message.
func RespondErr(c *gin.Context, err error) {
	status, code := Classify(err)
	if status == http.StatusInternalServerError {
		RespondError(c, status, code, errors.New("internal server error"))
		return
	}
	var aggErr *domainagg.Error
	if _, isAPI := apierr.As(err); !isAPI && errors.As(err, &aggErr) && aggErr.Message != "" {
		err = errors.New(aggErr.Message)
	}
	RespondError(c, status, code, err)
}

func Classify(err error) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}
	if ae, ok := apierr.As(err); ok && ae.Status != 0 {
		return ae.Status, ae.Code
	}
	switch domainagg.CodeOf(err) {
	case domainagg.CodeValidation, domainagg.CodeInvariantViolation:
		return http.StatusBadRequest, apierr.CodeInvalidRequest
	case domainagg.CodeNotFound:
		return http.StatusNotFound, apierr.CodeNotFound
	case domainagg.CodeConflict, domainagg.CodeRetryable:
		return http.StatusConflict, apierr.CodeConflict
	case domainagg.CodePreconditionFailed:
		return http.StatusPreconditionFailed, string(domainagg.CodePreconditionFailed)
	}
	return http.StatusInternalServerError, apierr.CodeInternal
}
