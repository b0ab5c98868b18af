package storage

import (
	"context"
	"io"
)

// FileStorage is the blob-store boundary. References handed to callers are
// public URLs; PathForURL maps one back to a storage path for deletion.
type FileStorage interface {
	// Upload writes a file under path and returns the storage path.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// GetURL returns the public URL for a stored path.
	GetURL(ctx context.Context, path string) (string, error)

	// PathForURL resolves a URL previously returned by GetURL back to its
	// storage path. Fails when the URL does not belong to this store.
	PathForURL(url string) (string, error)

	// Exists checks if a file exists.
	Exists(ctx context.Context, path string) (bool, error)
}
