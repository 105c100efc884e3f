package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"kundenstopper/internal/events"
	"kundenstopper/internal/logger"
	"kundenstopper/internal/model"
	"kundenstopper/internal/repository"
	"kundenstopper/internal/storage"
)

const (
	// PDFExtension is the only accepted upload type and the suffix of every stored name.
	PDFExtension = ".pdf"
	// DefaultPerPage matches the admin list page size.
	DefaultPerPage = 10
	// MaxPerPage caps client-requested page sizes.
	MaxPerPage = 100

	pdfContentType  = "application/pdf"
	fallbackPDFName = "document.pdf"
)

// now is replaced in tests.
var now = time.Now

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items      []model.Document `json:"data"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}

// UploadInput is one admitted file as received from the client.
type UploadInput struct {
	Reader   io.Reader
	Filename string
	Size     int64
	// Select pins the display to the new document once it is stored.
	Select bool
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload validates the payload, writes the file under a fresh UUID name and then
	// commits the metadata. The file is removed again if the metadata commit fails.
	Upload(ctx context.Context, in UploadInput) (*model.Document, error)

	// List returns one page of documents, newest first.
	List(ctx context.Context, page, perPage int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id int64) (*model.Document, error)

	// Rename changes the display name of a document.
	Rename(ctx context.Context, id int64, name string) (*model.Document, error)

	// Delete removes the metadata, resets a pin on this document and removes the file.
	Delete(ctx context.Context, id int64) error

	// Open streams the backing file of a stored name.
	Open(ctx context.Context, storedName string) (io.ReadCloser, storage.ObjectInfo, error)
}

type documentService struct {
	store    storage.Storage
	docs     repository.DocumentRepository
	settings repository.SettingRepository
	events   events.Publisher
	log      *logger.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(
	store storage.Storage,
	docs repository.DocumentRepository,
	settings repository.SettingRepository,
	pub events.Publisher,
	log *logger.Logger,
) DocumentService {
	return &documentService{
		store:    store,
		docs:     docs,
		settings: settings,
		events:   pub,
		log:      log.With(logger.Fields{"component": "documents"}),
	}
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (*model.Document, error) {
	if in.Reader == nil {
		return nil, fieldError("file", "no file selected")
	}
	filename := strings.TrimSpace(in.Filename)
	if filename == "" {
		return nil, fieldError("file", "no file selected")
	}
	if !strings.EqualFold(filepath.Ext(filename), PDFExtension) {
		return nil, fieldError("file", "only PDF files are allowed")
	}

	originalName := SecureFilename(filename)
	if originalName == "" {
		originalName = fallbackPDFName
	}
	storedName := uuid.NewString() + PDFExtension

	info, err := s.store.Put(ctx, storedName, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: pdfContentType,
		Metadata:    map[string]string{"original-filename": originalName},
	})
	if err != nil {
		if errors.Is(err, storage.ErrObjectExists) {
			return nil, fmt.Errorf("store %s: %w", storedName, ErrConflict)
		}
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc, err := s.docs.Create(ctx, &model.Document{
		StoredName:   storedName,
		OriginalName: originalName,
		UploadedAt:   now().UTC(),
		SizeBytes:    info.Size,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			err = ErrConflict
		}
		// Rollback: the file must not outlive a failed metadata commit.
		if delErr := s.store.Delete(ctx, storedName); delErr != nil {
			return nil, fmt.Errorf("db save failed: %w; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	s.log.Info("document_uploaded", logger.Fields{
		"id":            doc.ID,
		"stored_name":   doc.StoredName,
		"original_name": doc.OriginalName,
		"size_bytes":    doc.SizeBytes,
	})
	s.publish(ctx, events.DocumentUploaded, doc)

	if in.Select {
		if err := s.settings.Set(ctx, model.SettingSelectedPDFID, strconv.FormatInt(doc.ID, 10)); err != nil {
			return nil, fmt.Errorf("select document %d: %w", doc.ID, err)
		}
		s.publish(ctx, events.DisplaySelected, map[string]any{"selected_pdf_id": doc.ID})
	}
	return doc, nil
}

// List clamps page to >= 1 and perPage to 1..MaxPerPage.
func (s *documentService) List(ctx context.Context, page, perPage int) (*DocumentListResult, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	res, err := s.docs.List(ctx, repository.PageQuery{Limit: perPage, Offset: (page - 1) * perPage})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{
		Items:      res.Items,
		Total:      res.Total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: (res.Total + perPage - 1) / perPage,
	}, nil
}

func (s *documentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Rename trims the name and appends ".pdf" when it is missing.
// The name is stored as given otherwise; it is display text only.
func (s *documentService) Rename(ctx context.Context, id int64, name string) (*model.Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fieldError("name", "name must not be empty")
	}
	if !strings.HasSuffix(strings.ToLower(name), PDFExtension) {
		name += PDFExtension
	}

	matched, err := s.docs.Rename(ctx, id, name)
	if err != nil {
		return nil, fmt.Errorf("rename document %d: %w", id, err)
	}
	if !matched {
		return nil, ErrNotFound
	}

	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.DocumentRenamed, doc)
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, id int64) error {
	storedName, err := s.docs.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	if storedName == "" {
		return ErrNotFound
	}

	selected, err := s.settings.Get(ctx, model.SettingSelectedPDFID, model.SelectNewest)
	if err != nil {
		return fmt.Errorf("read selection: %w", err)
	}
	if pinned, err := strconv.ParseInt(strings.TrimSpace(selected), 10, 64); err == nil && pinned == id {
		if err := s.settings.Set(ctx, model.SettingSelectedPDFID, model.SelectNewest); err != nil {
			return fmt.Errorf("reset selection: %w", err)
		}
		s.log.Info("selection_reset", logger.Fields{"deleted_id": id})
	}

	switch err := s.store.Delete(ctx, storedName); {
	case err == nil:
	case errors.Is(err, storage.ErrObjectNotFound):
		s.log.Warn("document_file_missing", logger.Fields{"id": id, "stored_name": storedName})
	default:
		// The record is gone already; a leftover file is only an orphan.
		s.log.Error("document_file_delete_failed", err, logger.Fields{"id": id, "stored_name": storedName})
	}

	s.log.Info("document_deleted", logger.Fields{"id": id, "stored_name": storedName})
	s.publish(ctx, events.DocumentDeleted, map[string]any{"id": id, "stored_name": storedName})
	return nil
}

// Open only accepts names the service could have generated.
func (s *documentService) Open(ctx context.Context, storedName string) (io.ReadCloser, storage.ObjectInfo, error) {
	if !IsStoredName(storedName) {
		return nil, storage.ObjectInfo{}, ErrNotFound
	}
	rc, info, err := s.store.Get(ctx, storedName)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}

// IsStoredName reports whether name has the "<uuid>.pdf" shape of a stored name.
func IsStoredName(name string) bool {
	base, ok := strings.CutSuffix(name, PDFExtension)
	if !ok {
		return false
	}
	_, err := uuid.Parse(base)
	return err == nil && len(base) == 36
}

func (s *documentService) publish(ctx context.Context, event string, data any) {
	publish(ctx, s.events, s.log, event, data)
}

// publish never fails the calling operation; delivery problems are only logged.
func publish(ctx context.Context, pub events.Publisher, log *logger.Logger, event string, data any) {
	if err := pub.Publish(ctx, event, data); err != nil {
		log.Warn("event_publish_failed", logger.Fields{"event": event, "error": err.Error()})
	}
}
