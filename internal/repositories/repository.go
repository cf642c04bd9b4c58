package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobhub_backend/internal/config"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/storage"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
)

// CredentialRepository persists user accounts.
type CredentialRepository interface {
	// Create stores a new user. Returns ErrUserAlreadyExists when another
	// account holds the same email.
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	// UpdateRole changes a user's role. Returns ErrUserNotFound when absent.
	UpdateRole(ctx context.Context, id string, role models.UserRole) error
	FindAll(ctx context.Context) ([]models.User, error)
	CountAll(ctx context.Context) (int64, error)
}

// RecordRepository persists jobs and applications. Load methods hydrate the
// store's in-memory mirror at startup; mutations persist one record each and
// must be durable before they return.
type RecordRepository interface {
	LoadJobs(ctx context.Context) ([]models.Job, error)
	LoadApplications(ctx context.Context) ([]models.Application, error)

	CreateJob(ctx context.Context, job *models.Job) error
	// UpdateJob replaces the stored record. Returns ErrJobNotFound when absent.
	UpdateJob(ctx context.Context, job *models.Job) error
	// DeleteJob removes the job and every application referencing it as one
	// logical operation. Returns ErrJobNotFound when absent.
	DeleteJob(ctx context.Context, id string) error

	CreateApplication(ctx context.Context, app *models.Application) error
	// UpdateApplicationStatus touches only status and updated_at. Returns
	// ErrApplicationNotFound when absent.
	UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus, updatedAt time.Time) error
}

// SessionRepository persists the session pointer: the currently authenticated
// user, password already stripped.
type SessionRepository interface {
	Save(ctx context.Context, user *models.User) error
	// Load returns the restored user, or nil when no usable session exists.
	// Corrupt session data reads as absent, never as an error.
	Load(ctx context.Context) (*models.User, error)
	// Clear is idempotent.
	Clear(ctx context.Context) error
}

// Set bundles the repositories for one configured backend. The session
// pointer is blob-backed under both backends.
type Set struct {
	Credentials CredentialRepository
	Records     RecordRepository
	Sessions    SessionRepository
}

// New builds the repository set for the configured backend.
func New(ctx context.Context, cfg config.StoreConfig, blobs storage.BlobStore) (*Set, error) {
	sessions := NewSessionRepository(blobs)

	switch cfg.Backend {
	case config.BackendLocal:
		creds, err := NewLocalCredentialRepository(ctx, blobs)
		if err != nil {
			return nil, err
		}
		records, err := NewLocalRecordRepository(ctx, blobs)
		if err != nil {
			return nil, err
		}
		return &Set{Credentials: creds, Records: records, Sessions: sessions}, nil

	case config.BackendSQLite:
		db, err := OpenSQLite(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return &Set{
			Credentials: NewSQLiteCredentialRepository(db),
			Records:     NewSQLiteRecordRepository(db),
			Sessions:    sessions,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Backend)
	}
}
