package storage

import (
	"context"
	"io"
)

type FileStorage interface {
	// Upload stores the content under path and returns the cleaned key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
	// GetURL returns the public URL of a stored key.
	GetURL(ctx context.Context, path string) (string, error)
}
