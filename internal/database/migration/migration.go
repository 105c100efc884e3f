package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"kundenstopper/internal/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id            BIGSERIAL   PRIMARY KEY,
  stored_name   TEXT        NOT NULL UNIQUE,
  original_name TEXT        NOT NULL,
  uploaded_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  size_bytes    BIGINT      NOT NULL CHECK (size_bytes >= 0)
);`,
	},
	{
		Name: "create_index_documents_uploaded_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_uploaded_at ON documents (uploaded_at DESC, id DESC);`,
	},
	{
		Name: "create_table_settings",
		SQL: `CREATE TABLE IF NOT EXISTS settings (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`,
	},
}

// EnsureMigrated checks whether both tables exist and runs the migration steps if either is missing.
// Every step is idempotent, so a partially migrated schema is completed on the next run.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logger.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(logger.Fields{"component": "database", "db_host": dbHost})

	log.Info("db_migration_check", logger.Fields{"status": "starting"})

	var exists bool
	query := "SELECT to_regclass('public.documents') IS NOT NULL AND to_regclass('public.settings') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed", err, logger.Fields{
			"status":      "error",
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel tables: %w", err)
	}

	if exists {
		log.Info("db_migration_skip", logger.Fields{
			"status":      "success",
			"detail":      "schema already exists, skipping migration",
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	log.Info("db_migration_start", logger.Fields{"status": "in_progress"})

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed", err, logger.Fields{
				"status":           "error",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step", logger.Fields{
			"status":           "success",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	log.Info("db_migration_success", logger.Fields{
		"status":      "success",
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}
