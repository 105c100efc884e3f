package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"kundenstopper/internal/events"
	"kundenstopper/internal/logger"
	"kundenstopper/internal/model"
	"kundenstopper/internal/repository"
	"kundenstopper/internal/storage"
)

// SweepResult describes one retention run. FilesRemoved counts documents whose
// backing file was confirmed deleted; it can be lower than MetadataDeleted.
type SweepResult struct {
	Skipped         bool      `json:"skipped"`
	Cutoff          time.Time `json:"cutoff,omitempty"`
	ProtectedID     int64     `json:"protected_id"`
	Candidates      int       `json:"candidates"`
	MetadataDeleted int       `json:"metadata_deleted"`
	FilesRemoved    int       `json:"files_removed"`
	FilesMissing    int       `json:"files_missing"`
	FilesFailed     int       `json:"files_failed"`
}

// RetentionService deletes documents past the configured age.
type RetentionService interface {
	// Sweep runs one retention pass. Only one pass runs at a time; a concurrent
	// call returns ErrSweepInProgress. File removal errors are logged and skipped.
	Sweep(ctx context.Context) (*SweepResult, error)
}

type retentionService struct {
	mu       sync.Mutex
	docs     repository.DocumentRepository
	settings repository.SettingRepository
	display  DisplayService
	store    storage.Storage
	events   events.Publisher
	log      *logger.Logger
}

// NewRetentionService constructs a new RetentionService.
func NewRetentionService(
	docs repository.DocumentRepository,
	settings repository.SettingRepository,
	display DisplayService,
	store storage.Storage,
	pub events.Publisher,
	log *logger.Logger,
) RetentionService {
	return &retentionService{
		docs:     docs,
		settings: settings,
		display:  display,
		store:    store,
		events:   pub,
		log:      log.With(logger.Fields{"component": "retention"}),
	}
}

func (s *retentionService) Sweep(ctx context.Context) (*SweepResult, error) {
	if !s.mu.TryLock() {
		return nil, ErrSweepInProgress
	}
	defer s.mu.Unlock()

	defaults := model.DefaultSettings()
	enabled, err := s.settings.Get(ctx, model.SettingAutoCleanupEnabled, defaults[model.SettingAutoCleanupEnabled])
	if err != nil {
		return nil, err
	}
	if !cleanupEnabled(enabled) {
		s.log.Info("sweep_skipped", logger.Fields{"auto_cleanup_enabled": enabled})
		return &SweepResult{Skipped: true}, nil
	}

	rawDays, err := s.settings.Get(ctx, model.SettingAutoCleanupDays, defaults[model.SettingAutoCleanupDays])
	if err != nil {
		return nil, err
	}
	days, err := strconv.Atoi(strings.TrimSpace(rawDays))
	if err != nil || days <= 0 {
		return nil, fieldError(model.SettingAutoCleanupDays, fmt.Sprintf("stored value %q is not a positive number of days", rawDays))
	}

	protected, err := s.display.ProtectedID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve protected document: %w", err)
	}

	res := &SweepResult{
		Cutoff:      now().UTC().AddDate(0, 0, -days),
		ProtectedID: protected,
	}
	candidates, err := s.docs.ListOlderThan(ctx, res.Cutoff, protected)
	if err != nil {
		return nil, fmt.Errorf("list sweep candidates: %w", err)
	}
	res.Candidates = len(candidates)

	for _, doc := range candidates {
		storedName, err := s.docs.Delete(ctx, doc.ID)
		if err != nil {
			return res, fmt.Errorf("delete document %d: %w", doc.ID, err)
		}
		if storedName == "" {
			// Removed concurrently.
			continue
		}
		res.MetadataDeleted++

		fields := logger.Fields{"id": doc.ID, "stored_name": storedName}
		switch err := s.store.Delete(ctx, storedName); {
		case err == nil:
			res.FilesRemoved++
		case errors.Is(err, storage.ErrObjectNotFound):
			res.FilesMissing++
			s.log.Debug("sweep_file_missing", fields)
		default:
			res.FilesFailed++
			s.log.Error("sweep_file_delete_failed", err, fields)
		}
	}

	s.log.Info("sweep_finished", logger.Fields{
		"cutoff":           res.Cutoff.Format(time.RFC3339),
		"protected_id":     res.ProtectedID,
		"candidates":       res.Candidates,
		"metadata_deleted": res.MetadataDeleted,
		"files_removed":    res.FilesRemoved,
		"files_missing":    res.FilesMissing,
		"files_failed":     res.FilesFailed,
	})
	publish(ctx, s.events, s.log, events.RetentionSwept, res)
	return res, nil
}
