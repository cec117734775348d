package main

import (
	"github.com/smallbiznis/ratrace/internal/config"
	"github.com/smallbiznis/ratrace/internal/migration"
	"github.com/smallbiznis/ratrace/internal/observability"
	"github.com/smallbiznis/ratrace/internal/server"
	"github.com/smallbiznis/ratrace/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				config.Module,
				observability.Module,
				fx.Provide(RegisterSnowflake),
				db.Module,
				server.Module,
				migration.Module,
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}
