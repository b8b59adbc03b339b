package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "orders",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("SQLite In Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		assert.Equal(t, "sqlite", db.Dialector.Name())

		sqlDB, err := db.DB()
		require.NoError(t, err)
		assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.EqualError(t, err, "unsupported database driver: oracle")
		assert.Nil(t, db)
	})
}

func TestDialector(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{DriverMySQL, "mysql"},
		{"", "mysql"},
		{DriverPostgres, "postgres"},
		{DriverSQLite, "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.driver, func(t *testing.T) {
			d, err := Dialector(Config{Driver: tt.driver, Name: "x", Password: "p@ss"}, 5)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
		})
	}
}
