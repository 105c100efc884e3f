package repository

import "context"

// SettingRepository is a generic key/value store for display settings.
// Values are stored as strings; validation belongs to the caller.
type SettingRepository interface {
	// Get returns the stored value or def if the key is absent.
	Get(ctx context.Context, key, def string) (string, error)

	// Set upserts a value.
	Set(ctx context.Context, key, value string) error

	// All returns every stored key/value pair.
	All(ctx context.Context) (map[string]string, error)

	// Seed inserts the given defaults for keys that have no value yet.
	// Existing values are left untouched.
	Seed(ctx context.Context, defaults map[string]string) error
}
