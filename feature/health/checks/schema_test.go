package checks

import (
	"context"
	"testing"

	"order-manager/core/database"
	"order-manager/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_Migrated(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, store.NewSQL(db).Migrate(context.Background()))

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Empty(t, report.Missing)
}

func TestCheckSchema_MissingTables(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Contains(t, report.Missing["orders"], "item_id")
	assert.Contains(t, report.Missing["stocks"], "sizes")
	assert.Contains(t, report.Missing["categories"], "slug")
}

func TestCheckSchema_PartialTable(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, store.NewSQL(db).Migrate(context.Background()))
	require.NoError(t, db.Exec("ALTER TABLE orders DROP COLUMN notes").Error)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, map[string][]string{"orders": {"notes"}}, report.Missing)
}
