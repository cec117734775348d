package seed

import (
	"context"
	"strings"

	accountdomain "github.com/smallbiznis/ratrace/internal/account/domain"
	"github.com/smallbiznis/ratrace/internal/config"
	"go.uber.org/zap"
)

// EnsureBootstrapAdmin creates or promotes the configured admin account.
// It is a no-op when no bootstrap username is configured.
func EnsureBootstrapAdmin(ctx context.Context, accounts accountdomain.Service, cfg config.BootstrapConfig, log *zap.Logger) error {
	username := strings.TrimSpace(cfg.AdminUsername)
	if username == "" {
		return nil
	}

	account, err := accounts.EnsureAdmin(ctx, username, cfg.AdminPassword)
	if err != nil {
		return err
	}

	if log != nil {
		log.Info("bootstrap admin ready",
			zap.Int64("account_id", account.ID),
			zap.String("username", account.Username),
		)
	}
	return nil
}
