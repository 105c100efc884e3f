package sqlite

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kundenstopper/internal/repository"
)

// SettingSQLite is a GORM/SQLite implementation of repository.SettingRepository.
type SettingSQLite struct {
	db *gorm.DB
}

// NewSettingSQLite creates a new SettingSQLite repository.
func NewSettingSQLite(db *gorm.DB) *SettingSQLite {
	return &SettingSQLite{db: db}
}

var _ repository.SettingRepository = (*SettingSQLite)(nil)

func (r *SettingSQLite) Get(ctx context.Context, key, def string) (string, error) {
	var row settingRow
	if err := r.db.WithContext(ctx).Where("key = ?", key).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return def, nil
		}
		return "", err
	}
	return row.Value, nil
}

func (r *SettingSQLite) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&settingRow{Key: key, Value: value}).Error
	})
}

func (r *SettingSQLite) All(ctx context.Context) (map[string]string, error) {
	var rows []settingRow
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (r *SettingSQLite) Seed(ctx context.Context, defaults map[string]string) error {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, k := range keys {
			err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&settingRow{Key: k, Value: defaults[k]}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
