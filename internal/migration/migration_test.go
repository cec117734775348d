package migration

import (
	"io/fs"
	"testing"

	"github.com/smallbiznis/ratrace/internal/config"
	"github.com/smallbiznis/ratrace/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(embeddedMigrations, migrationsDir+"/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(embeddedMigrations, migrationsDir+"/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Equal(t, len(ups), len(downs))
}

func TestRunAutoMigratesSqlite(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	require.NoError(t, Run(conn, config.Config{DBType: "sqlite"}))

	for _, table := range []string{"organisations", "positions", "accounts", "sessions", "reviews", "interviews", "review_votes", "interview_votes"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
}

func TestRunRequiresConnection(t *testing.T) {
	assert.Error(t, Run(nil, config.Config{}))
}
