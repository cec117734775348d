package authorization

import (
	"context"
	"testing"

	"github.com/smallbiznis/ratrace/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)

	enforcer, err := NewEnforcer(conn)
	require.NoError(t, err)

	return NewService(Params{Log: zap.NewNop(), Enforcer: enforcer})
}

func TestAuthorizeUserActions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	assert.NoError(t, svc.Authorize(ctx, "user", ObjectReview, ActionReviewCreate))
	assert.NoError(t, svc.Authorize(ctx, "user", ObjectVote, ActionVoteCast))
	assert.ErrorIs(t, svc.Authorize(ctx, "user", ObjectOrganisation, ActionOrganisationCreate), ErrForbidden)
}

func TestAuthorizeAdminInheritsUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	assert.NoError(t, svc.Authorize(ctx, "admin", ObjectOrganisation, ActionOrganisationCreate))
	assert.NoError(t, svc.Authorize(ctx, "ADMIN", ObjectInterview, ActionInterviewCreate))
}

func TestAuthorizeRejectsEmptyInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Authorize(ctx, " ", ObjectReview, ActionReviewCreate), ErrInvalidActor)
	assert.ErrorIs(t, svc.Authorize(ctx, "user", "", ActionReviewCreate), ErrInvalidObject)
	assert.ErrorIs(t, svc.Authorize(ctx, "user", ObjectReview, ""), ErrInvalidAction)
	assert.ErrorIs(t, svc.Authorize(ctx, "guest", ObjectReview, ActionReviewCreate), ErrForbidden)
}

func TestSeedPoliciesIsIdempotent(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	_, err = NewEnforcer(conn)
	require.NoError(t, err)
	enforcer, err := NewEnforcer(conn)
	require.NoError(t, err)

	policies, err := enforcer.GetPolicy()
	require.NoError(t, err)
	assert.Len(t, policies, 8)
}
