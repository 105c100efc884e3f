package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"kundenstopper/internal/events"
	"kundenstopper/internal/logger"
	"kundenstopper/internal/model"
	"kundenstopper/internal/repository"
)

// UploadsPath is the public URL prefix backing files are served under.
const UploadsPath = "/uploads/"

// DisplayService resolves and changes what the public display shows.
type DisplayService interface {
	// Current returns the active document with its presentation parameters,
	// or ErrNotAvailable when there is none. It has no side effects.
	Current(ctx context.Context) (*model.Display, error)

	// Select pins the display to an existing document.
	Select(ctx context.Context, id int64) (*model.Document, error)

	// SelectNewest makes the display follow the newest upload.
	SelectNewest(ctx context.Context) error

	// ProtectedID returns the id of the document the display currently resolves
	// to, or 0 when no document can be protected.
	ProtectedID(ctx context.Context) (int64, error)
}

type displayService struct {
	docs     repository.DocumentRepository
	settings repository.SettingRepository
	events   events.Publisher
	log      *logger.Logger
}

// NewDisplayService constructs a new DisplayService.
func NewDisplayService(
	docs repository.DocumentRepository,
	settings repository.SettingRepository,
	pub events.Publisher,
	log *logger.Logger,
) DisplayService {
	return &displayService{
		docs:     docs,
		settings: settings,
		events:   pub,
		log:      log.With(logger.Fields{"component": "display"}),
	}
}

func (s *displayService) Current(ctx context.Context) (*model.Display, error) {
	doc, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}

	defaults := model.DefaultSettings()
	interval, err := s.settings.Get(ctx, model.SettingCycleInterval, defaults[model.SettingCycleInterval])
	if err != nil {
		return nil, err
	}
	color, err := s.settings.Get(ctx, model.SettingBackgroundColor, defaults[model.SettingBackgroundColor])
	if err != nil {
		return nil, err
	}
	indicator, err := s.settings.Get(ctx, model.SettingProgressIndicator, defaults[model.SettingProgressIndicator])
	if err != nil {
		return nil, err
	}

	return &model.Display{
		StoredName:        doc.StoredName,
		OriginalName:      doc.OriginalName,
		URL:               UploadsPath + doc.StoredName,
		CycleInterval:     positiveOr(interval, defaultCycleInterval),
		BackgroundColor:   color,
		ProgressIndicator: indicator,
	}, nil
}

// resolve follows the selection. A pin on a deleted document is not repaired;
// it reports ErrNotAvailable until the selection changes.
func (s *displayService) resolve(ctx context.Context) (*model.Document, error) {
	selected, err := s.settings.Get(ctx, model.SettingSelectedPDFID, model.SelectNewest)
	if err != nil {
		return nil, err
	}

	var doc *model.Document
	if selected == model.SelectNewest {
		doc, err = s.docs.Newest(ctx)
	} else {
		id, perr := strconv.ParseInt(selected, 10, 64)
		if perr != nil {
			s.log.Warn("selection_unparsable", logger.Fields{"selected_pdf_id": selected})
			return nil, ErrNotAvailable
		}
		doc, err = s.docs.FindByID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotAvailable
		}
		return nil, err
	}
	return doc, nil
}

func (s *displayService) Select(ctx context.Context, id int64) (*model.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.settings.Set(ctx, model.SettingSelectedPDFID, strconv.FormatInt(id, 10)); err != nil {
		return nil, fmt.Errorf("select document %d: %w", id, err)
	}

	s.log.Info("display_selected", logger.Fields{"selected_pdf_id": id})
	publish(ctx, s.events, s.log, events.DisplaySelected, map[string]any{"selected_pdf_id": id})
	return doc, nil
}

func (s *displayService) SelectNewest(ctx context.Context) error {
	if err := s.settings.Set(ctx, model.SettingSelectedPDFID, model.SelectNewest); err != nil {
		return fmt.Errorf("select newest: %w", err)
	}

	s.log.Info("display_selected", logger.Fields{"selected_pdf_id": 0})
	publish(ctx, s.events, s.log, events.DisplaySelected, map[string]any{"selected_pdf_id": 0})
	return nil
}

// ProtectedID treats an unparsable selection like "0" so the sweeper still
// spares the newest document.
func (s *displayService) ProtectedID(ctx context.Context) (int64, error) {
	selected, err := s.settings.Get(ctx, model.SettingSelectedPDFID, model.SelectNewest)
	if err != nil {
		return 0, err
	}
	if id, perr := strconv.ParseInt(selected, 10, 64); perr == nil && id != 0 {
		return id, nil
	}

	doc, err := s.docs.Newest(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return doc.ID, nil
}
