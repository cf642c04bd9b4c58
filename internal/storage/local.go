package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalBlobStore implements BlobStore on the local filesystem, one
// <key>.json file per blob under a base directory.
type LocalBlobStore struct {
	basePath string
}

// NewLocalBlobStore creates the base directory if needed.
func NewLocalBlobStore(basePath string) (*LocalBlobStore, error) {
	if basePath == "" {
		basePath = "./data"
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalBlobStore{basePath: basePath}, nil
}

func (s *LocalBlobStore) path(key string) string {
	return filepath.Join(s.basePath, key+".json")
}

// Read returns the blob stored under key.
func (s *LocalBlobStore) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("failed to read blob %s: %w", key, err)
	}
	return data, nil
}

// Write replaces the blob under key atomically via a temp file and rename, so
// a crash mid-write leaves the previous blob intact.
func (s *LocalBlobStore) Write(ctx context.Context, key string, data []byte) error {
	target := s.path(key)

	tmp, err := os.CreateTemp(s.basePath, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for blob %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write blob %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close blob %s: %w", key, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace blob %s: %w", key, err)
	}
	return nil
}

// Delete removes the blob under key.
func (s *LocalBlobStore) Delete(ctx context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return nil
}

// Exists checks whether a blob is stored under key.
func (s *LocalBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
