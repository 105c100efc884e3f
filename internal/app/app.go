// Package app wires configuration into the concrete database, storage,
// event and service implementations shared by every command.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kundenstopper/internal/config"
	"kundenstopper/internal/database"
	"kundenstopper/internal/database/migration"
	"kundenstopper/internal/events"
	"kundenstopper/internal/http/handler"
	"kundenstopper/internal/logger"
	"kundenstopper/internal/repository"
	"kundenstopper/internal/repository/postgres"
	"kundenstopper/internal/repository/sqlite"
	"kundenstopper/internal/service"
	"kundenstopper/internal/storage"
)

// App holds the assembled components. Close releases them in reverse order.
type App struct {
	Config *config.AppConfig
	Log    *logger.Logger

	DB     *sql.DB
	Store  storage.Storage
	Events events.Publisher

	DocumentRepo repository.DocumentRepository
	SettingRepo  repository.SettingRepository

	Documents service.DocumentService
	Display   service.DisplayService
	Settings  service.SettingsService
	Retention service.RetentionService

	closers []func() error
}

// New connects to the configured database and storage backend, migrates the
// schema, seeds default settings and builds the services.
func New(ctx context.Context, cfg *config.AppConfig, log *logger.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Log: log}
	if err := a.openDatabase(ctx); err != nil {
		a.Close()
		return nil, err
	}

	store, err := newStorage(cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.Store = store

	a.Events = events.Nop{}
	if cfg.NATS.URL != "" {
		pub, err := events.NewNATSPublisher(cfg.NATS, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Events = pub
		a.closers = append(a.closers, pub.Close)
	}

	a.Documents = service.NewDocumentService(a.Store, a.DocumentRepo, a.SettingRepo, a.Events, log)
	a.Display = service.NewDisplayService(a.DocumentRepo, a.SettingRepo, a.Events, log)
	a.Settings = service.NewSettingsService(a.SettingRepo, a.Events, log)
	a.Retention = service.NewRetentionService(a.DocumentRepo, a.SettingRepo, a.Display, a.Store, a.Events, log)

	if err := a.Settings.EnsureDefaults(ctx); err != nil {
		a.Close()
		return nil, err
	}

	log.Info("app_ready", logger.Fields{
		"db_driver":       cfg.DBDriver,
		"storage_backend": cfg.StorageBackend,
		"events_enabled":  cfg.NATS.URL != "",
	})
	return a, nil
}

func (a *App) openDatabase(ctx context.Context) error {
	switch a.Config.DBDriver {
	case config.DriverPostgres:
		db, err := database.NewPostgres(ctx, a.Config.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		a.DB = db
		a.closers = append(a.closers, db.Close)

		if err := migration.EnsureMigrated(ctx, db, a.Log, a.Config.Database.Host); err != nil {
			return err
		}
		a.DocumentRepo = postgres.NewDocumentPostgres(db)
		a.SettingRepo = postgres.NewSettingPostgres(db)

	case config.DriverSQLite:
		gdb, err := database.NewSQLite(a.Config.SQLite)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		db, err := gdb.DB()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		a.DB = db
		a.closers = append(a.closers, db.Close)

		if err := sqlite.Migrate(ctx, gdb); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		a.DocumentRepo = sqlite.NewDocumentSQLite(gdb)
		a.SettingRepo = sqlite.NewSettingSQLite(gdb)
	}
	return nil
}

func newStorage(cfg *config.AppConfig) (storage.Storage, error) {
	if cfg.StorageBackend == config.StorageMinIO {
		return storage.NewMinIO(cfg.MinIO)
	}
	return storage.NewLocal(cfg.Local)
}

// Services exposes the components the HTTP layer needs.
func (a *App) Services() handler.Services {
	return handler.Services{
		DB:        a.DB,
		Documents: a.Documents,
		Display:   a.Display,
		Settings:  a.Settings,
		Retention: a.Retention,
	}
}

// Close drains the event publisher and closes the database.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
