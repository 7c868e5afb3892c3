package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeUnauthorized     = "unauthorized"
	CodeNotFound         = "not_found"
	CodeInvalidRequest   = "invalid_request"
	CodeConflict         = "conflict"
	CodeWebhookSignature = "webhook_verification_failed"
	CodeUpstreamBilling  = "upstream_billing_error"
	CodeInternal         = "internal"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Unauthorized(err error) *Error { return New(http.StatusUnauthorized, CodeUnauthorized, err) }
func NotFound(err error) *Error     { return New(http.StatusNotFound, CodeNotFound, err) }
func BadRequest(err error) *Error   { return New(http.StatusBadRequest, CodeInvalidRequest, err) }

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
