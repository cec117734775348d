package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/smallbiznis/ratrace/internal/account/domain"
	"github.com/smallbiznis/ratrace/internal/authorization"
	orgdomain "github.com/smallbiznis/ratrace/internal/organisation/domain"
	postdomain "github.com/smallbiznis/ratrace/internal/post/domain"
	"github.com/smallbiznis/ratrace/internal/ratelimit"
	votedomain "github.com/smallbiznis/ratrace/internal/vote/domain"
	"github.com/smallbiznis/ratrace/pkg/db"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

var internalPayload = errorPayload{Type: "internal_error", Message: "internal server error"}

// errorClass maps a group of sentinel errors onto one response.
type errorClass struct {
	status  int
	typ     string
	message string
	match   func(error) bool
}

// errorClasses is checked in order; the first match wins.
var errorClasses = []errorClass{
	{http.StatusUnauthorized, "unauthorized", "unauthorized", isAny(
		ErrUnauthorized,
		accountdomain.ErrUnauthenticated,
		accountdomain.ErrInvalidCredentials,
		accountdomain.ErrInvalidSession,
		accountdomain.ErrSessionNotFound,
		accountdomain.ErrSessionExpired,
		accountdomain.ErrSessionRevoked,
		postdomain.ErrUnauthenticated,
		votedomain.ErrUnauthenticated,
	)},
	{http.StatusForbidden, "forbidden", "forbidden", isAny(
		ErrForbidden,
		postdomain.ErrForbidden,
		authorization.ErrForbidden,
		accountdomain.ErrInactive,
	)},
	{http.StatusConflict, "conflict", "", func(err error) bool {
		return isAny(ErrConflict, accountdomain.ErrUsernameTaken, orgdomain.ErrURLTaken)(err) ||
			db.IsDuplicateKeyErr(err)
	}},
	{http.StatusNotFound, "not_found", "not found", isAny(
		ErrNotFound,
		orgdomain.ErrNotFound,
		orgdomain.ErrPositionNotFound,
		postdomain.ErrNotFound,
		votedomain.ErrNotFound,
		accountdomain.ErrNotFound,
		gorm.ErrRecordNotFound,
	)},
	{http.StatusTooManyRequests, "rate_limited", "too many requests", isAny(ratelimit.ErrLimited)},
}

// validationSentinels render as a single-entry validation_error envelope.
var validationSentinels = isAny(
	ErrInvalidRequest,
	votedomain.ErrInvalidVote,
	authorization.ErrInvalidActor,
	authorization.ErrInvalidObject,
	authorization.ErrInvalidAction,
	orgdomain.ErrInvalidName,
	orgdomain.ErrInvalidURL,
	orgdomain.ErrInvalidSize,
	orgdomain.ErrInvalidIndustry,
	orgdomain.ErrInvalidPosition,
	orgdomain.ErrInvalidHQ,
	postdomain.ErrInvalidKind,
	postdomain.ErrInvalidTag,
	postdomain.ErrInvalidCurrency,
	postdomain.ErrInvalidSortOrder,
	postdomain.ErrInvalidBody,
	postdomain.ErrInvalidLocation,
	postdomain.ErrInvalidSalary,
	postdomain.ErrInvalidDuration,
	postdomain.ErrInvalidStages,
	postdomain.ErrInvalidScope,
	accountdomain.ErrInvalidUsername,
	accountdomain.ErrInvalidPassword,
)

func isAny(targets ...error) func(error) bool {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, internalPayload
	}

	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}
	if validationSentinels(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{{
				Field:   validationErrorField(code),
				Code:    code,
				Message: validationErrorMessage(code),
			}},
		}
	}

	for _, class := range errorClasses {
		if !class.match(err) {
			continue
		}
		message := class.message
		if class.status == http.StatusConflict {
			message = conflictMessage(err)
		}
		return class.status, errorPayload{Type: class.typ, Message: message}
	}
	return http.StatusInternalServerError, internalPayload
}

// classifyErrorForLog returns the error type and code written to request logs.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return payload.Type, "internal_error"
	case len(payload.Errors) > 0:
		return payload.Type, payload.Errors[0].Code
	}
	return payload.Type, payload.Type
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, accountdomain.ErrUsernameTaken):
		return "username already taken"
	case errors.Is(err, orgdomain.ErrURLTaken):
		return "organisation url already registered"
	}
	return "conflict"
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	// The innermost wrapped error is the sentinel carrying the code.
	for next := errors.Unwrap(err); next != nil; next = errors.Unwrap(err) {
		err = next
	}
	return err.Error()
}

func validationErrorField(code string) string {
	switch code {
	case "invalid_request":
		return "request"
	case "invalid_post_type":
		return "post_type"
	}
	return strings.TrimPrefix(code, "invalid_")
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "invalid_vote":
		return "vote must be a non-zero integer"
	case "invalid_sort_order":
		return "unknown sort order"
	}
	return "invalid value"
}
