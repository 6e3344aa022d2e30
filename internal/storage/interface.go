package storage

import (
	"context"
	"io"
)

// Service is the file-storage boundary. The backend stores machinery
// images under opaque keys and serves them at stable URLs.
type Service interface {
	// Save writes the file under key and returns its retrieval URL.
	Save(ctx context.Context, key string, r io.Reader) (string, error)

	// Open returns the stored file for reading.
	Open(key string) (io.ReadCloser, error)

	// Delete removes a stored file. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// URLFor returns the stable retrieval URL for a stored key.
	URLFor(key string) string
}
