package seed

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/smallbiznis/ratrace/internal/account/domain"
	accountrepo "github.com/smallbiznis/ratrace/internal/account/repository"
	accountservice "github.com/smallbiznis/ratrace/internal/account/service"
	"github.com/smallbiznis/ratrace/internal/config"
	"github.com/smallbiznis/ratrace/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAccountService(t *testing.T) accountdomain.Service {
	t.Helper()

	conn, err := db.NewTest(&accountdomain.Account{}, &accountdomain.Session{})
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo, sessions := accountrepo.New(conn)
	return accountservice.New(zap.NewNop(), repo, sessions, node)
}

func TestEnsureBootstrapAdminSkipsWithoutUsername(t *testing.T) {
	svc := newAccountService(t)

	err := EnsureBootstrapAdmin(context.Background(), svc, config.BootstrapConfig{}, zap.NewNop())
	require.NoError(t, err)
}

func TestEnsureBootstrapAdminIsIdempotent(t *testing.T) {
	svc := newAccountService(t)
	cfg := config.BootstrapConfig{AdminUsername: "root_admin", AdminPassword: "correct-horse"}

	require.NoError(t, EnsureBootstrapAdmin(context.Background(), svc, cfg, zap.NewNop()))
	require.NoError(t, EnsureBootstrapAdmin(context.Background(), svc, cfg, nil))

	result, err := svc.Login(context.Background(), accountdomain.LoginRequest{
		Username: "root_admin",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, accountdomain.TypeAdmin, result.Account.Type)
}

func TestEnsureBootstrapAdminRejectsWeakPassword(t *testing.T) {
	svc := newAccountService(t)
	cfg := config.BootstrapConfig{AdminUsername: "root_admin", AdminPassword: "short"}

	err := EnsureBootstrapAdmin(context.Background(), svc, cfg, zap.NewNop())
	assert.ErrorIs(t, err, accountdomain.ErrInvalidPassword)
}
