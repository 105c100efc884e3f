package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains the backing-file abstraction for uploaded documents.
// Keys are stored names generated by the application, never user input.

var (
	// ErrObjectNotFound is returned when a key has no backing object.
	ErrObjectNotFound = errors.New("object not found")
	// ErrObjectExists is returned by Put when the key is already taken.
	ErrObjectExists = errors.New("object already exists")
	// ErrInvalidKey is returned for keys that are not a single path element.
	ErrInvalidKey = errors.New("invalid object key")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the file storage collaborator: durable write, streaming read,
// delete and existence check, keyed by stored name.
type Storage interface {
	// Put durably writes the reader under key. It never overwrites: an existing
	// key yields ErrObjectExists. When Put returns nil the content is persisted.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key, returning ErrObjectNotFound if it is already gone.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}
