package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"kundenstopper/internal/repository"
)

// SettingPostgres is a PostgreSQL implementation of repository.SettingRepository.
type SettingPostgres struct {
	db *sql.DB
}

// NewSettingPostgres creates a new SettingPostgres repository.
func NewSettingPostgres(db *sql.DB) *SettingPostgres {
	return &SettingPostgres{db: db}
}

var _ repository.SettingRepository = (*SettingPostgres)(nil)

// Get returns the value for key, or def when the key is absent.
func (r *SettingPostgres) Get(ctx context.Context, key, def string) (string, error) {
	const q = `SELECT value FROM settings WHERE key = $1`
	var v string
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return def, nil
		}
		return "", err
	}
	return v, nil
}

// Set upserts a single key.
func (r *SettingPostgres) Set(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, q, key, value)
		return err
	})
}

// All returns every stored setting.
func (r *SettingPostgres) All(ctx context.Context) (map[string]string, error) {
	const q = `SELECT key, value FROM settings`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Seed inserts defaults for missing keys in a single transaction.
func (r *SettingPostgres) Seed(ctx context.Context, defaults map[string]string) error {
	const q = `INSERT INTO settings (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`

	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, q, k, defaults[k]); err != nil {
				return err
			}
		}
		return nil
	})
}
