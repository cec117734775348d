package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	accountdomain "github.com/smallbiznis/ratrace/internal/account/domain"
	"github.com/smallbiznis/ratrace/internal/authorization"
	orgdomain "github.com/smallbiznis/ratrace/internal/organisation/domain"
	postdomain "github.com/smallbiznis/ratrace/internal/post/domain"
	"github.com/smallbiznis/ratrace/internal/ratelimit"
	votedomain "github.com/smallbiznis/ratrace/internal/vote/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		err      error
		status   int
		errType  string
		wantCode string
	}{
		{accountdomain.ErrUnauthenticated, http.StatusUnauthorized, "unauthorized", ""},
		{accountdomain.ErrSessionExpired, http.StatusUnauthorized, "unauthorized", ""},
		{postdomain.ErrForbidden, http.StatusForbidden, "forbidden", ""},
		{authorization.ErrForbidden, http.StatusForbidden, "forbidden", ""},
		{accountdomain.ErrInactive, http.StatusForbidden, "forbidden", ""},
		{votedomain.ErrInvalidVote, http.StatusBadRequest, "validation_error", "invalid_vote"},
		{postdomain.ErrInvalidSortOrder, http.StatusBadRequest, "validation_error", "invalid_sort_order"},
		{orgdomain.ErrInvalidPosition, http.StatusBadRequest, "validation_error", "invalid_position"},
		{fmt.Errorf("create review: %w", postdomain.ErrInvalidBody), http.StatusBadRequest, "validation_error", "invalid_body"},
		{orgdomain.ErrNotFound, http.StatusNotFound, "not_found", ""},
		{gorm.ErrRecordNotFound, http.StatusNotFound, "not_found", ""},
		{accountdomain.ErrUsernameTaken, http.StatusConflict, "conflict", ""},
		{gorm.ErrDuplicatedKey, http.StatusConflict, "conflict", ""},
		{ratelimit.ErrLimited, http.StatusTooManyRequests, "rate_limited", ""},
		{errors.New("connection reset"), http.StatusInternalServerError, "internal_error", ""},
	}

	for _, tc := range cases {
		status, payload := mapError(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.errType, payload.Type, tc.err.Error())
		if tc.wantCode != "" && assert.Len(t, payload.Errors, 1, tc.err.Error()) {
			assert.Equal(t, tc.wantCode, payload.Errors[0].Code)
		}
	}
}

func TestClassifyErrorForLog(t *testing.T) {
	errType, code := classifyErrorForLog(votedomain.ErrInvalidVote)
	assert.Equal(t, "validation_error", errType)
	assert.Equal(t, "invalid_vote", code)

	errType, code = classifyErrorForLog(errors.New("boom"))
	assert.Equal(t, "internal_error", errType)
	assert.Equal(t, "internal_error", code)
}
