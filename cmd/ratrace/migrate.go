package main

import (
	"context"
	"errors"

	"github.com/smallbiznis/ratrace/internal/config"
	"github.com/smallbiznis/ratrace/internal/migration"
	"github.com/smallbiznis/ratrace/internal/observability"
	"github.com/smallbiznis/ratrace/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newMigrateCmd() *cobra.Command {
	var down int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				conn *gorm.DB
				cfg  config.Config
				log  *zap.Logger
			)
			app := fx.New(
				fx.NopLogger,
				config.Module,
				observability.Module,
				db.Module,
				fx.Populate(&conn, &cfg, &log),
			)
			return runOnce(cmd.Context(), app, func(ctx context.Context) error {
				if down == 0 {
					if err := migration.Run(conn, cfg); err != nil {
						return err
					}
					log.Info("schema up to date", zap.String("type", cfg.DBType))
					return nil
				}

				if cfg.DBType != "postgres" {
					return errors.New("rollback is only supported for postgres")
				}
				sqlDB, err := conn.DB()
				if err != nil {
					return err
				}
				if err := migration.Rollback(sqlDB, down); err != nil {
					return err
				}
				log.Info("migrations rolled back", zap.Int("steps", down))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&down, "down", 0, "roll back this many migrations instead of applying")
	return cmd
}

// runOnce starts app, runs fn and stops app again.
func runOnce(ctx context.Context, app *fx.App, fn func(ctx context.Context) error) error {
	if err := app.Err(); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	runErr := fn(ctx)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	return errors.Join(runErr, app.Stop(stopCtx))
}
