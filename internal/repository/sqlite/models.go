package sqlite

import (
	"time"

	"kundenstopper/internal/model"
)

// documentRow is the GORM mapping of the documents table.
type documentRow struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	StoredName   string    `gorm:"type:text;not null;uniqueIndex"`
	OriginalName string    `gorm:"type:text;not null"`
	UploadedAt   time.Time `gorm:"not null;index"`
	SizeBytes    int64     `gorm:"not null"`
}

func (documentRow) TableName() string {
	return "documents"
}

func (r documentRow) toModel() model.Document {
	return model.Document{
		ID:           r.ID,
		StoredName:   r.StoredName,
		OriginalName: r.OriginalName,
		UploadedAt:   r.UploadedAt,
		SizeBytes:    r.SizeBytes,
	}
}

// settingRow is the GORM mapping of the settings table.
type settingRow struct {
	Key   string `gorm:"primaryKey;type:text"`
	Value string `gorm:"type:text;not null"`
}

func (settingRow) TableName() string {
	return "settings"
}
