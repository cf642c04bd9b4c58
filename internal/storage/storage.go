package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned when a blob has never been written (or was deleted).
var ErrNotExist = errors.New("blob does not exist")

// BlobStore persists named blobs wholesale. It backs the key-value record
// variant (one JSON blob per collection) and the session pointer.
type BlobStore interface {
	// Read returns the blob stored under key, or ErrNotExist.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the blob under key. The write is atomic: a reader never
	// observes a partially written blob.
	Write(ctx context.Context, key string, data []byte) error

	// Delete removes the blob under key. Deleting an absent blob is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a blob is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}
