package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.True(t, IsDuplicateKeyErr(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: accounts.username")))
	assert.True(t, IsDuplicateKeyErr(errors.New(`ERROR: duplicate key value violates unique constraint "ux_accounts_username"`)))
	assert.True(t, IsDuplicateKeyErr(errors.New("Error 1062: Duplicate entry")))
	assert.False(t, IsDuplicateKeyErr(errors.New("connection refused")))
}

type testRow struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
}

func TestNewTestIsolatesDatabases(t *testing.T) {
	first, err := NewTest(&testRow{})
	assert.NoError(t, err)
	second, err := NewTest(&testRow{})
	assert.NoError(t, err)

	assert.NoError(t, first.Create(&testRow{Name: "acme"}).Error)

	var count int64
	assert.NoError(t, second.Model(&testRow{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestContainsExprIsCaseSensitive(t *testing.T) {
	conn, err := NewTest(&testRow{})
	assert.NoError(t, err)
	assert.NoError(t, conn.Create(&[]testRow{{Name: "Acme Corp"}, {Name: "acme labs"}}).Error)

	var rows []testRow
	err = conn.Where(ContainsExpr(conn, "name"), "Acme").Find(&rows).Error
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Acme Corp", rows[0].Name)
}
