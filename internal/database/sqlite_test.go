package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kundenstopper/internal/config"
)

func TestBuildSQLiteDSN(t *testing.T) {
	dsn, err := BuildSQLiteDSN(config.SQLiteConfig{Path: "data/app.db"})
	require.NoError(t, err)
	assert.Contains(t, dsn, "data/app.db?")
	assert.Contains(t, dsn, "journal_mode(WAL)")
	assert.Contains(t, dsn, "busy_timeout(5000)")

	_, err = BuildSQLiteDSN(config.SQLiteConfig{})
	assert.Error(t, err)
}

func TestNewSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kundenstopper.db")

	db, err := NewSQLite(config.SQLiteConfig{Path: path})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	assert.FileExists(t, path)
}
