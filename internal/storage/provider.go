package storage

import (
	"context"
	"io"
)

// Provider is the storage backend for uploaded media. The platform ships
// with a local filesystem implementation; the interface leaves room for an
// object store.
type Provider interface {
	// Store writes content under path and returns nothing; path is relative
	// to the provider root
	Store(ctx context.Context, path string, content io.Reader) error
	// Open streams a stored file
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes a stored file; deleting a missing file is not an error
	Delete(ctx context.Context, path string) error
	// Exists checks whether a file is present
	Exists(ctx context.Context, path string) (bool, error)
}
