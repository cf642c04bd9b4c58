package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/storage"
)

// Blob keys, one per collection.
const (
	blobUsersKey        = "users"
	blobJobsKey         = "jobs"
	blobApplicationsKey = "applications"
)

// loadCollection hydrates a collection blob. A missing blob reads as an empty
// collection.
func loadCollection[T any](ctx context.Context, blobs storage.BlobStore, key string) ([]T, error) {
	data, err := blobs.Read(ctx, key)
	if err != nil {
		if err == storage.ErrNotExist {
			return []T{}, nil
		}
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("corrupt %s collection: %w", key, err)
	}
	return items, nil
}

// saveCollection re-serializes the whole collection into its blob.
func saveCollection[T any](ctx context.Context, blobs storage.BlobStore, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s collection: %w", key, err)
	}
	return blobs.Write(ctx, key, data)
}

// LocalCredentialRepository keeps users in one JSON blob, rewritten wholesale
// on every mutation. The in-memory slice mirrors the last durable state: a
// failed write rolls the mirror back.
type LocalCredentialRepository struct {
	blobs storage.BlobStore
	users []models.User
}

func NewLocalCredentialRepository(ctx context.Context, blobs storage.BlobStore) (*LocalCredentialRepository, error) {
	users, err := loadCollection[models.User](ctx, blobs, blobUsersKey)
	if err != nil {
		return nil, err
	}
	return &LocalCredentialRepository{blobs: blobs, users: users}, nil
}

func (r *LocalCredentialRepository) persist(ctx context.Context) error {
	return saveCollection(ctx, r.blobs, blobUsersKey, r.users)
}

func (r *LocalCredentialRepository) Create(ctx context.Context, user *models.User) error {
	for i := range r.users {
		if r.users[i].Email == user.Email {
			return ErrUserAlreadyExists
		}
	}

	r.users = append(r.users, *user)
	if err := r.persist(ctx); err != nil {
		r.users = r.users[:len(r.users)-1]
		return err
	}
	return nil
}

func (r *LocalCredentialRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *LocalCredentialRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *LocalCredentialRepository) UpdateRole(ctx context.Context, id string, role models.UserRole) error {
	for i := range r.users {
		if r.users[i].ID == id {
			prev := r.users[i].Role
			r.users[i].Role = role
			if err := r.persist(ctx); err != nil {
				r.users[i].Role = prev
				return err
			}
			return nil
		}
	}
	return ErrUserNotFound
}

func (r *LocalCredentialRepository) FindAll(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *LocalCredentialRepository) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// LocalRecordRepository keeps jobs and applications in one JSON blob each.
// Mutations rewrite the affected collection(s) wholesale; the in-memory
// slices always match the last durable state.
type LocalRecordRepository struct {
	blobs        storage.BlobStore
	jobs         []models.Job
	applications []models.Application
}

func NewLocalRecordRepository(ctx context.Context, blobs storage.BlobStore) (*LocalRecordRepository, error) {
	jobs, err := loadCollection[models.Job](ctx, blobs, blobJobsKey)
	if err != nil {
		return nil, err
	}
	apps, err := loadCollection[models.Application](ctx, blobs, blobApplicationsKey)
	if err != nil {
		return nil, err
	}
	return &LocalRecordRepository{blobs: blobs, jobs: jobs, applications: apps}, nil
}

func (r *LocalRecordRepository) persistJobs(ctx context.Context) error {
	return saveCollection(ctx, r.blobs, blobJobsKey, r.jobs)
}

func (r *LocalRecordRepository) persistApplications(ctx context.Context) error {
	return saveCollection(ctx, r.blobs, blobApplicationsKey, r.applications)
}

func (r *LocalRecordRepository) LoadJobs(ctx context.Context) ([]models.Job, error) {
	out := make([]models.Job, len(r.jobs))
	copy(out, r.jobs)
	return out, nil
}

func (r *LocalRecordRepository) LoadApplications(ctx context.Context) ([]models.Application, error) {
	out := make([]models.Application, len(r.applications))
	copy(out, r.applications)
	return out, nil
}

func (r *LocalRecordRepository) CreateJob(ctx context.Context, job *models.Job) error {
	r.jobs = append(r.jobs, *job)
	if err := r.persistJobs(ctx); err != nil {
		r.jobs = r.jobs[:len(r.jobs)-1]
		return err
	}
	return nil
}

func (r *LocalRecordRepository) UpdateJob(ctx context.Context, job *models.Job) error {
	for i := range r.jobs {
		if r.jobs[i].ID == job.ID {
			prev := r.jobs[i]
			r.jobs[i] = *job
			if err := r.persistJobs(ctx); err != nil {
				r.jobs[i] = prev
				return err
			}
			return nil
		}
	}
	return ErrJobNotFound
}

func (r *LocalRecordRepository) DeleteJob(ctx context.Context, id string) error {
	idx := -1
	for i := range r.jobs {
		if r.jobs[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrJobNotFound
	}

	prevJobs := r.jobs
	prevApps := r.applications

	jobs := make([]models.Job, 0, len(r.jobs)-1)
	jobs = append(jobs, r.jobs[:idx]...)
	jobs = append(jobs, r.jobs[idx+1:]...)

	apps := make([]models.Application, 0, len(r.applications))
	for _, a := range r.applications {
		if a.JobID != id {
			apps = append(apps, a)
		}
	}

	r.jobs = jobs
	r.applications = apps

	// Cascade: both collections rewritten as one logical operation. If either
	// write fails, the mirror reverts to the last durable state.
	if err := r.persistJobs(ctx); err != nil {
		r.jobs = prevJobs
		r.applications = prevApps
		return err
	}
	if err := r.persistApplications(ctx); err != nil {
		r.jobs = prevJobs
		r.applications = prevApps
		// The jobs blob was already rewritten; put it back so the durable
		// state matches the mirror again.
		if rerr := r.persistJobs(ctx); rerr != nil {
			logger.WithError(rerr).Error("failed to restore jobs blob after cascade failure", "job_id", id)
		}
		return err
	}
	return nil
}

func (r *LocalRecordRepository) CreateApplication(ctx context.Context, app *models.Application) error {
	r.applications = append(r.applications, *app)
	if err := r.persistApplications(ctx); err != nil {
		r.applications = r.applications[:len(r.applications)-1]
		return err
	}
	return nil
}

func (r *LocalRecordRepository) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus, updatedAt time.Time) error {
	for i := range r.applications {
		if r.applications[i].ID == id {
			prev := r.applications[i]
			r.applications[i].Status = status
			r.applications[i].UpdatedAt = &updatedAt
			if err := r.persistApplications(ctx); err != nil {
				r.applications[i] = prev
				return err
			}
			return nil
		}
	}
	return ErrApplicationNotFound
}
