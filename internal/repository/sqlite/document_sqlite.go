package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"kundenstopper/internal/model"
	"kundenstopper/internal/repository"
)

// DocumentSQLite is a GORM/SQLite implementation of repository.DocumentRepository.
type DocumentSQLite struct {
	db *gorm.DB
}

// NewDocumentSQLite creates a new DocumentSQLite repository.
func NewDocumentSQLite(db *gorm.DB) *DocumentSQLite {
	return &DocumentSQLite{db: db}
}

var _ repository.DocumentRepository = (*DocumentSQLite)(nil)

func newestFirst(q *gorm.DB) *gorm.DB {
	return q.Order("uploaded_at DESC").Order("id DESC")
}

func (r *DocumentSQLite) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	row := documentRow{
		StoredName:   doc.StoredName,
		OriginalName: doc.OriginalName,
		UploadedAt:   doc.UploadedAt.UTC(),
		SizeBytes:    doc.SizeBytes,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueConstraintError(err) {
				return repository.ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := row.toModel()
	return &out, nil
}

func (r *DocumentSQLite) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	var row documentRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, convertNotFoundError(err)
	}
	out := row.toModel()
	return &out, nil
}

func (r *DocumentSQLite) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}

	var rows []documentRow
	q := newestFirst(r.db.WithContext(ctx).Model(&documentRow{}))
	if err := q.Limit(pq.Limit).Offset(pq.Offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Document]{
		Items: toModels(rows),
		Total: total,
	}, nil
}

func (r *DocumentSQLite) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&documentRow{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *DocumentSQLite) Rename(ctx context.Context, id int64, name string) (bool, error) {
	var matched bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&documentRow{}).Where("id = ?", id).Update("original_name", name)
		if res.Error != nil {
			return res.Error
		}
		matched = res.RowsAffected > 0
		return nil
	})
	return matched, err
}

func (r *DocumentSQLite) Delete(ctx context.Context, id int64) (string, error) {
	var storedName string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row documentRow
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Delete(&documentRow{}, row.ID).Error; err != nil {
			return err
		}
		storedName = row.StoredName
		return nil
	})
	if err != nil {
		return "", err
	}
	return storedName, nil
}

func (r *DocumentSQLite) Newest(ctx context.Context) (*model.Document, error) {
	var row documentRow
	if err := newestFirst(r.db.WithContext(ctx)).Take(&row).Error; err != nil {
		return nil, convertNotFoundError(err)
	}
	out := row.toModel()
	return &out, nil
}

func (r *DocumentSQLite) ListOlderThan(ctx context.Context, cutoff time.Time, excludeID int64) ([]model.Document, error) {
	var rows []documentRow
	err := r.db.WithContext(ctx).
		Where("uploaded_at < ? AND id <> ?", cutoff.UTC(), excludeID).
		Order("uploaded_at ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toModels(rows), nil
}

func toModels(rows []documentRow) []model.Document {
	items := make([]model.Document, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.toModel())
	}
	return items
}
