package repository

import (
	"context"
	"errors"
	"time"

	"kundenstopper/internal/model"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a stored name is already taken.
	ErrConflict = errors.New("stored name already exists")
)

// DocumentRepository defines data access for documents.
// No business logic here, strictly persistence operations. Every mutation
// runs inside its own transaction and is rolled back completely on failure.
type DocumentRepository interface {
	// Create inserts a new document record and returns it with the assigned ID.
	// It fails with ErrConflict when doc.StoredName is already in use.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// List returns a page of documents, newest first (ties broken by ID descending),
	// together with the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// Count returns the number of documents.
	Count(ctx context.Context) (int, error)

	// Rename changes the original name. It reports whether a row matched;
	// a missing ID is not an error at this layer.
	Rename(ctx context.Context, id int64, name string) (bool, error)

	// Delete removes a document and returns its stored name so the caller can
	// remove the backing file. It returns "" if the row did not exist.
	Delete(ctx context.Context, id int64) (string, error)

	// Newest returns the most recently uploaded document or ErrNotFound.
	Newest(ctx context.Context) (*model.Document, error)

	// ListOlderThan returns documents uploaded strictly before cutoff,
	// skipping excludeID (0 excludes nothing).
	ListOlderThan(ctx context.Context, cutoff time.Time, excludeID int64) ([]model.Document, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
