package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kundenstopper/internal/config"
	"kundenstopper/internal/database"
	"kundenstopper/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLite(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func mustCreate(t *testing.T, repo *DocumentSQLite, stored, name string, at time.Time, size int64) *model.Document {
	t.Helper()
	doc, err := repo.Create(context.Background(), &model.Document{
		StoredName:   stored,
		OriginalName: name,
		UploadedAt:   at,
		SizeBytes:    size,
	})
	require.NoError(t, err)
	return doc
}
