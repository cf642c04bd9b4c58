package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"
)

// OpenSQLite opens the embedded database and migrates the schema: users,
// jobs and applications tables with the unique email index and the lookup
// indexes on jobs.created_by, applications.job_id and applications.user_id.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	start := time.Now()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	err = db.AutoMigrate(&models.User{}, &models.Job{}, &models.Application{})
	logger.DBLog("migrate", dsn, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}
	return db, nil
}

// SQLiteCredentialRepository persists users row-by-row.
type SQLiteCredentialRepository struct {
	db *gorm.DB
}

func NewSQLiteCredentialRepository(db *gorm.DB) *SQLiteCredentialRepository {
	return &SQLiteCredentialRepository{db: db}
}

func (r *SQLiteCredentialRepository) Create(ctx context.Context, user *models.User) error {
	// Pre-check keeps the common case on the friendly path; the unique index
	// still catches a racing writer.
	var existing models.User
	if err := r.db.WithContext(ctx).Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserAlreadyExists
	}
	return err
}

func (r *SQLiteCredentialRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *SQLiteCredentialRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *SQLiteCredentialRepository) UpdateRole(ctx context.Context, id string, role models.UserRole) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *SQLiteCredentialRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *SQLiteCredentialRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SQLiteRecordRepository persists jobs and applications with one targeted
// statement per mutation.
type SQLiteRecordRepository struct {
	db *gorm.DB
}

func NewSQLiteRecordRepository(db *gorm.DB) *SQLiteRecordRepository {
	return &SQLiteRecordRepository{db: db}
}

func (r *SQLiteRecordRepository) LoadJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	// rowid preserves insertion order, matching the blob variant's collection
	// order.
	if err := r.db.WithContext(ctx).Order("rowid").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *SQLiteRecordRepository) LoadApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.WithContext(ctx).Order("rowid").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *SQLiteRecordRepository) CreateJob(ctx context.Context, job *models.Job) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Create(job).Error
	logger.DBLog("create_job", job.ID, time.Since(start), err)
	return err
}

func (r *SQLiteRecordRepository) UpdateJob(ctx context.Context, job *models.Job) error {
	result := r.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", job.ID).
		Updates(map[string]interface{}{
			"title":        job.Title,
			"company":      job.Company,
			"location":     job.Location,
			"type":         job.Type,
			"salary":       job.Salary,
			"description":  job.Description,
			"requirements": job.Requirements,
			"created_by":   job.CreatedBy,
			"posted_at":    job.PostedAt,
			"updated_at":   job.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *SQLiteRecordRepository) DeleteJob(ctx context.Context, id string) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.Job{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrJobNotFound
		}
		// Cascade inside the same transaction.
		return tx.Where("job_id = ?", id).Delete(&models.Application{}).Error
	})
	logger.DBLog("delete_job_cascade", id, time.Since(start), err)
	return err
}

func (r *SQLiteRecordRepository) CreateApplication(ctx context.Context, app *models.Application) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Create(app).Error
	logger.DBLog("create_application", app.ID, time.Since(start), err)
	return err
}

func (r *SQLiteRecordRepository) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
