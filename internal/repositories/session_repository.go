package repositories

import (
	"context"
	"encoding/json"

	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/storage"
)

const blobSessionKey = "session"

// BlobSessionRepository persists the session pointer as a single blob. It is
// used under both record backends: the session pointer never lives in the
// relational schema.
type BlobSessionRepository struct {
	blobs storage.BlobStore
}

func NewSessionRepository(blobs storage.BlobStore) *BlobSessionRepository {
	return &BlobSessionRepository{blobs: blobs}
}

func (r *BlobSessionRepository) Save(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.blobs.Write(ctx, blobSessionKey, data)
}

// Load restores the persisted session. Absent or unparseable data yields a
// logged-out state, never an error: a broken session file must not block
// startup.
func (r *BlobSessionRepository) Load(ctx context.Context) (*models.User, error) {
	data, err := r.blobs.Read(ctx, blobSessionKey)
	if err != nil {
		if err == storage.ErrNotExist {
			return nil, nil
		}
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil || user.ID == "" {
		logger.Warn("discarding malformed session data", "key", blobSessionKey)
		return nil, nil
	}
	return &user, nil
}

func (r *BlobSessionRepository) Clear(ctx context.Context) error {
	return r.blobs.Delete(ctx, blobSessionKey)
}
