package main

import (
	"context"

	"github.com/smallbiznis/ratrace/internal/config"
	"github.com/smallbiznis/ratrace/internal/migration"
	"github.com/smallbiznis/ratrace/internal/observability"
	"github.com/smallbiznis/ratrace/internal/seed"
	"github.com/smallbiznis/ratrace/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newSeedCmd() *cobra.Command {
	dummy := seed.DefaultDummyConfig()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with generated organisations, posts and votes",
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
				if err := migration.Run(conn, cfg); err != nil {
					return err
				}
				result, err := seed.GenerateDummyData(ctx, conn, dummy, log.Named("seed"))
				if err != nil {
					return err
				}
				log.Info("dummy data generated",
					zap.Int("orgs", result.Orgs),
					zap.Int("accounts", result.Accounts),
					zap.Int("reviews", result.Reviews),
					zap.Int("interviews", result.Interviews),
					zap.Int("votes", result.Votes),
				)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&dummy.Orgs, "orgs", dummy.Orgs, "organisations to create")
	flags.IntVar(&dummy.Accounts, "accounts", dummy.Accounts, "accounts to create")
	flags.IntVar(&dummy.PositionsPerOrg, "positions", dummy.PositionsPerOrg, "positions per organisation")
	flags.IntVar(&dummy.PostsPerOrg, "reviews", dummy.PostsPerOrg, "reviews and interviews per organisation")
	flags.IntVar(&dummy.Votes, "votes", dummy.Votes, "votes of each kind to cast")
	flags.Uint64Var(&dummy.Seed, "seed", dummy.Seed, "random seed")
	return cmd
}
