package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/ratrace/internal/account/domain"
	"github.com/smallbiznis/ratrace/internal/account/repository"
	"github.com/smallbiznis/ratrace/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dbConn, err := db.NewTest(&domain.Account{}, &domain.Session{})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	repo, sessionRepo := repository.New(dbConn)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return New(zap.NewNop(), repo, sessionRepo, node).(*Service)
}

func register(t *testing.T, svc *Service, username string) *domain.LoginResult {
	t.Helper()

	result, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username:  username,
		Password:  "correct-password",
		UserAgent: " test-agent ",
	})
	require.NoError(t, err)
	return result
}

func TestRegisterOpensSession(t *testing.T) {
	svc := newTestService(t)

	result := register(t, svc, "alice")
	assert.NotEmpty(t, result.RawToken)
	assert.Equal(t, domain.TypeUser, result.Account.Type)
	assert.Equal(t, domain.StatusActive, result.Account.Status)
	assert.NotEqual(t, "correct-password", result.Account.Password)

	account, err := svc.Authenticate(context.Background(), result.RawToken)
	require.NoError(t, err)
	assert.Equal(t, result.Account.ID, account.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Username: "a", Password: "correct-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidUsername)

	_, err = svc.Register(ctx, domain.RegisterRequest{Username: "has space", Password: "correct-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidUsername)

	_, err = svc.Register(ctx, domain.RegisterRequest{Username: "bob", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	register(t, svc, "bob")
	_, err = svc.Register(ctx, domain.RegisterRequest{Username: "bob", Password: "another-password"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "alice")

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Username: "alice",
		Password: "wrong-password",
	})
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Username: "nobody",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc := newTestService(t)
	result := register(t, svc, "alice")

	require.NoError(t, svc.repo.UpdateFields(context.Background(), result.Account.ID, map[string]any{
		"status": domain.StatusInactive,
	}))

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Username: "alice",
		Password: "correct-password",
	})
	assert.ErrorIs(t, err, domain.ErrInactive)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	result := register(t, svc, "alice")

	require.NoError(t, svc.Logout(ctx, result.RawToken))
	// A second logout of the same session is a no-op.
	require.NoError(t, svc.Logout(ctx, result.RawToken))

	_, err := svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)

	assert.ErrorIs(t, svc.Logout(ctx, ""), domain.ErrInvalidSession)
	assert.ErrorIs(t, svc.Logout(ctx, "unknown"), domain.ErrInvalidSession)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	svc := newTestService(t)
	result := register(t, svc, "alice")

	svc.now = func() time.Time { return time.Now().UTC().Add(sessionTTL + time.Hour) }

	_, err := svc.Authenticate(context.Background(), result.RawToken)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestUpdatePreferences(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	result := register(t, svc, "alice")

	on := true
	account, err := svc.UpdatePreferences(ctx, result.Account.ID, domain.PreferencesRequest{DarkMode: &on})
	require.NoError(t, err)
	assert.True(t, account.DarkMode)
	assert.False(t, account.Anonymous)

	account, err = svc.UpdatePreferences(ctx, result.Account.ID, domain.PreferencesRequest{Anonymous: &on})
	require.NoError(t, err)
	assert.True(t, account.DarkMode)
	assert.True(t, account.Anonymous)

	_, err = svc.UpdatePreferences(ctx, 0, domain.PreferencesRequest{DarkMode: &on})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestEnsureAdminPromotesExistingAccount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	result := register(t, svc, "alice")

	admin, err := svc.EnsureAdmin(ctx, "alice", "ignored-password")
	require.NoError(t, err)
	assert.Equal(t, result.Account.ID, admin.ID)
	assert.Equal(t, domain.TypeAdmin, admin.Type)

	stored, err := svc.Get(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TypeAdmin, stored.Type)

	created, err := svc.EnsureAdmin(ctx, "root", "root-password")
	require.NoError(t, err)
	assert.Equal(t, domain.TypeAdmin, created.Type)
	assert.NotEqual(t, admin.ID, created.ID)
}

func TestGetUnknownAccount(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
