package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"kundenstopper/internal/model"
	"kundenstopper/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var documentCols = []string{"id", "stored_name", "original_name", "uploaded_at", "size_bytes"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestDocumentPostgres_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	doc := &model.Document{
		StoredName:   "7d3c1f7e-1a2b-4c5d-8e9f-001122334455.pdf",
		OriginalName: "Menu.pdf",
		UploadedAt:   now,
		SizeBytes:    5000,
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO documents").
			WithArgs(doc.StoredName, doc.OriginalName, doc.UploadedAt, doc.SizeBytes).
			WillReturnRows(sqlmock.NewRows(documentCols).
				AddRow(7, doc.StoredName, doc.OriginalName, doc.UploadedAt, doc.SizeBytes))
		mock.ExpectCommit()

		result, err := repo.Create(ctx, doc)

		require.NoError(t, err)
		assert.Equal(t, int64(7), result.ID)
		assert.Equal(t, doc.StoredName, result.StoredName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to conflict and rolls back", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO documents").
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key"})
		mock.ExpectRollback()

		result, err := repo.Create(ctx, doc)

		assert.ErrorIs(t, err, repository.ErrConflict)
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit failure is reported", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO documents").
			WillReturnRows(sqlmock.NewRows(documentCols).
				AddRow(1, doc.StoredName, doc.OriginalName, doc.UploadedAt, doc.SizeBytes))
		mock.ExpectCommit().WillReturnError(errors.New("disk full"))

		result, err := repo.Create(ctx, doc)

		assert.ErrorContains(t, err, "commit tx: disk full")
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(documentCols).
			AddRow(3, "a.pdf", "Menu.pdf", time.Now(), 100)

		mock.ExpectQuery(regexp.QuoteMeta("FROM documents WHERE id = $1")).
			WithArgs(int64(3)).
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, 3)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), doc.ID)
		assert.Equal(t, "Menu.pdf", doc.OriginalName)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM documents WHERE id = $1")).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, 99)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, doc)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM documents")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows(documentCols).
		AddRow(2, "b.pdf", "B.pdf", time.Now(), 10).
		AddRow(1, "a.pdf", "A.pdf", time.Now().Add(-time.Hour), 20)

	mock.ExpectQuery("ORDER BY uploaded_at DESC, id DESC").
		WithArgs(10, 0).
		WillReturnRows(rows)

	res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Items, 2)
	assert.Equal(t, int64(2), res.Items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Rename(t *testing.T) {
	ctx := context.Background()

	t.Run("existing row", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE documents SET original_name").
			WithArgs("Lunch.pdf", int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		matched, err := repo.Rename(ctx, 4, "Lunch.pdf")

		assert.NoError(t, err)
		assert.True(t, matched)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is a soft no-op", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE documents SET original_name").
			WithArgs("Lunch.pdf", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		matched, err := repo.Rename(ctx, 5, "Lunch.pdf")

		assert.NoError(t, err)
		assert.False(t, matched)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentPostgres_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored name", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM documents WHERE id = $1 RETURNING stored_name")).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"stored_name"}).AddRow("x.pdf"))
		mock.ExpectCommit()

		name, err := repo.Delete(ctx, 7)

		assert.NoError(t, err)
		assert.Equal(t, "x.pdf", name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row returns empty name", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("DELETE FROM documents").
			WithArgs(int64(8)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectCommit()

		name, err := repo.Delete(ctx, 8)

		assert.NoError(t, err)
		assert.Empty(t, name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store error rolls back", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("DELETE FROM documents").
			WithArgs(int64(9)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		_, err := repo.Delete(ctx, 9)

		assert.ErrorContains(t, err, "connection reset")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentPostgres_Newest(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("LIMIT 1").
		WillReturnRows(sqlmock.NewRows(documentCols).AddRow(5, "n.pdf", "N.pdf", time.Now(), 1))

	doc, err := repo.Newest(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), doc.ID)

	mock.ExpectQuery("LIMIT 1").WillReturnError(sql.ErrNoRows)

	doc, err = repo.Newest(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, doc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_ListOlderThan(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentPostgres(db)
	ctx := context.Background()
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE uploaded_at < $1 AND id <> $2")).
		WithArgs(cutoff, int64(3)).
		WillReturnRows(sqlmock.NewRows(documentCols).
			AddRow(1, "a.pdf", "A.pdf", cutoff.AddDate(0, -1, 0), 1).
			AddRow(2, "b.pdf", "B.pdf", cutoff.AddDate(0, 0, -1), 1))

	docs, err := repo.ListOlderThan(ctx, cutoff, 3)

	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
