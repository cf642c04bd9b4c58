package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/datatypes"

	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/notify"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/validator"
	"jobhub_backend/pkg/apperrors"
)

// JobService owns the jobs and applications collections. It keeps an
// in-memory mirror of both, hydrated from the record repository at
// construction; every mutation persists before the mirror changes, so the
// mirror always matches the last durable state.
type JobService interface {
	AddJob(ctx context.Context, input models.JobInput, createdBy string) (*models.Job, error)
	UpdateJob(ctx context.Context, id string, update models.JobUpdate) error
	DeleteJob(ctx context.Context, id string) error
	GetJob(id string) (*models.Job, bool)
	Jobs() []models.Job

	ApplyForJob(ctx context.Context, jobID string, input models.ApplicationInput) (*models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) error
	GetUserApplications(userID string) []models.Application
	GetJobApplications(jobID string) []models.Application
	Applications() []models.Application

	Stats() DashboardStats
}

// DashboardStats are the admin dashboard aggregates.
type DashboardStats struct {
	TotalJobs            int
	TotalApplications    int
	PendingApplications  int
	AcceptedApplications int
	RejectedApplications int
	UniqueApplicants     int
	// RecentApplications holds at most five entries, newest first.
	RecentApplications []models.Application
}

type JobServiceImpl struct {
	records  repositories.RecordRepository
	validate *validator.Validator
	notifier notify.Notifier

	mu           sync.Mutex
	jobs         []models.Job
	applications []models.Application
}

// NewJobService hydrates the mirrors and, when the jobs collection is empty
// and seeding is enabled, persists the sample postings before returning. The
// store is ready for dependents as soon as the constructor completes.
func NewJobService(
	ctx context.Context,
	records repositories.RecordRepository,
	validate *validator.Validator,
	notifier notify.Notifier,
	seedDemoData bool,
) (JobService, error) {
	jobs, err := records.LoadJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	apps, err := records.LoadApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}

	s := &JobServiceImpl{
		records:      records,
		validate:     validate,
		notifier:     notifier,
		jobs:         jobs,
		applications: apps,
	}

	if len(s.jobs) == 0 && seedDemoData {
		for _, job := range sampleJobs() {
			j := job
			if err := records.CreateJob(ctx, &j); err != nil {
				return nil, fmt.Errorf("failed to seed sample jobs: %w", err)
			}
			s.jobs = append(s.jobs, j)
		}
		logger.Info("seeded sample jobs", "count", len(s.jobs))
	}

	return s, nil
}

func (s *JobServiceImpl) AddJob(ctx context.Context, input models.JobInput, createdBy string) (*models.Job, error) {
	input.Requirements = models.FilterBlankRequirements(input.Requirements)
	if err := s.validate.Validate(&input); err != nil {
		s.notifier.Notify(notify.Notification{
			Title:       "Job could not be added",
			Description: err.Error(),
			Severity:    notify.SeverityError,
		})
		return nil, apperrors.ValidationError(err.Error()).WithError(err)
	}

	job := models.NewJob(input, createdBy)
	if err := s.records.CreateJob(ctx, job); err != nil {
		logger.WithError(err).Error("failed to persist job", "job_id", job.ID)
		s.notifier.Notify(notify.Notification{
			Title:       "Job could not be added",
			Description: "Something went wrong. Please try again.",
			Severity:    notify.SeverityError,
		})
		return nil, apperrors.InternalError(err)
	}

	s.mu.Lock()
	s.jobs = append(s.jobs, *job)
	s.mu.Unlock()

	s.notifier.Notify(notify.Notification{
		Title:       "Job added",
		Description: "The job has been added successfully",
		Severity:    notify.SeverityNormal,
	})

	out := *job
	return &out, nil
}

func (s *JobServiceImpl) UpdateJob(ctx context.Context, id string, update models.JobUpdate) error {
	if err := s.validate.Validate(&update); err != nil {
		s.notifier.Notify(notify.Notification{
			Title:       "Job update failed",
			Description: err.Error(),
			Severity:    notify.SeverityError,
		})
		return apperrors.ValidationError(err.Error()).WithError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.jobIndex(id)
	if idx == -1 {
		s.notifyJobNotFound("Job update failed")
		return apperrors.ErrJobNotFound
	}

	merged := s.jobs[idx]
	if update.Title != nil {
		merged.Title = *update.Title
	}
	if update.Company != nil {
		merged.Company = *update.Company
	}
	if update.Location != nil {
		merged.Location = *update.Location
	}
	if update.Type != nil {
		merged.Type = *update.Type
	}
	if update.Salary != nil {
		merged.Salary = *update.Salary
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.Requirements != nil {
		reqs := models.FilterBlankRequirements(update.Requirements)
		if len(reqs) == 0 {
			s.notifier.Notify(notify.Notification{
				Title:       "Job update failed",
				Description: "Requirements must contain at least one entry",
				Severity:    notify.SeverityError,
			})
			return apperrors.ValidationError("requirements must contain at least one entry")
		}
		merged.Requirements = datatypes.NewJSONSlice(reqs)
	}

	now := time.Now().UTC()
	merged.UpdatedAt = &now

	if err := s.records.UpdateJob(ctx, &merged); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			s.notifyJobNotFound("Job update failed")
			return apperrors.ErrJobNotFound
		}
		logger.WithError(err).Error("failed to persist job update", "job_id", id)
		s.notifier.Notify(notify.Notification{
			Title:       "Job update failed",
			Description: "Something went wrong. Please try again.",
			Severity:    notify.SeverityError,
		})
		return apperrors.InternalError(err)
	}

	s.jobs[idx] = merged
	s.notifier.Notify(notify.Notification{
		Title:       "Job updated",
		Description: "The job has been updated successfully",
		Severity:    notify.SeverityNormal,
	})
	return nil
}

func (s *JobServiceImpl) DeleteJob(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.records.DeleteJob(ctx, id); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			s.notifyJobNotFound("Job delete failed")
			return apperrors.ErrJobNotFound
		}
		logger.WithError(err).Error("failed to delete job", "job_id", id)
		s.notifier.Notify(notify.Notification{
			Title:       "Job delete failed",
			Description: "Something went wrong. Please try again.",
			Severity:    notify.SeverityError,
		})
		return apperrors.InternalError(err)
	}

	jobs := make([]models.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if j.ID != id {
			jobs = append(jobs, j)
		}
	}
	apps := make([]models.Application, 0, len(s.applications))
	for _, a := range s.applications {
		if a.JobID != id {
			apps = append(apps, a)
		}
	}
	s.jobs = jobs
	s.applications = apps

	s.notifier.Notify(notify.Notification{
		Title:       "Job deleted",
		Description: "The job and related applications have been deleted",
		Severity:    notify.SeverityNormal,
	})
	return nil
}

// GetJob is a pure lookup with no side effects.
func (s *JobServiceImpl) GetJob(id string) (*models.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.jobIndex(id)
	if idx == -1 {
		return nil, false
	}
	job := s.jobs[idx]
	return &job, true
}

func (s *JobServiceImpl) Jobs() []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

func (s *JobServiceImpl) ApplyForJob(ctx context.Context, jobID string, input models.ApplicationInput) (*models.Application, error) {
	if err := s.validate.Validate(&input); err != nil {
		s.notifier.Notify(notify.Notification{
			Title:       "Application failed",
			Description: err.Error(),
			Severity:    notify.SeverityError,
		})
		return nil, apperrors.ValidationError(err.Error()).WithError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.jobIndex(jobID) == -1 {
		s.notifier.Notify(notify.Notification{
			Title:       "Application failed",
			Description: "Job not found",
			Severity:    notify.SeverityError,
		})
		return nil, apperrors.ErrJobNotFound
	}

	// One application per job and user. An explicit rejection, never a
	// silent dedupe.
	for _, a := range s.applications {
		if a.JobID == jobID && a.UserID == input.UserID {
			s.notifier.Notify(notify.Notification{
				Title:       "Application failed",
				Description: "You have already applied for this job",
				Severity:    notify.SeverityError,
			})
			return nil, apperrors.ErrAlreadyApplied
		}
	}

	app := models.NewApplication(jobID, input)
	if err := s.records.CreateApplication(ctx, app); err != nil {
		logger.WithError(err).Error("failed to persist application", "application_id", app.ID)
		s.notifier.Notify(notify.Notification{
			Title:       "Application failed",
			Description: "Something went wrong. Please try again.",
			Severity:    notify.SeverityError,
		})
		return nil, apperrors.InternalError(err)
	}

	s.applications = append(s.applications, *app)

	s.notifier.Notify(notify.Notification{
		Title:       "Application submitted",
		Description: "Your application has been submitted successfully",
		Severity:    notify.SeverityNormal,
	})

	out := *app
	return &out, nil
}

func (s *JobServiceImpl) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	statusInput := struct {
		Status models.ApplicationStatus `json:"status" validate:"required,appstatus"`
	}{Status: status}
	if err := s.validate.Validate(&statusInput); err != nil {
		s.notifier.Notify(notify.Notification{
			Title:       "Application update failed",
			Description: err.Error(),
			Severity:    notify.SeverityError,
		})
		return apperrors.ValidationError(err.Error()).WithError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.applications {
		if s.applications[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.notifier.Notify(notify.Notification{
			Title:       "Application update failed",
			Description: "Application not found",
			Severity:    notify.SeverityError,
		})
		return apperrors.ErrApplicationNotFound
	}

	now := time.Now().UTC()
	if err := s.records.UpdateApplicationStatus(ctx, id, status, now); err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			s.notifier.Notify(notify.Notification{
				Title:       "Application update failed",
				Description: "Application not found",
				Severity:    notify.SeverityError,
			})
			return apperrors.ErrApplicationNotFound
		}
		logger.WithError(err).Error("failed to persist application status", "application_id", id)
		s.notifier.Notify(notify.Notification{
			Title:       "Application update failed",
			Description: "Something went wrong. Please try again.",
			Severity:    notify.SeverityError,
		})
		return apperrors.InternalError(err)
	}

	s.applications[idx].Status = status
	s.applications[idx].UpdatedAt = &now

	s.notifier.Notify(notify.Notification{
		Title:       "Application updated",
		Description: fmt.Sprintf("The application status has been updated to %s", status),
		Severity:    notify.SeverityNormal,
	})
	return nil
}

// GetUserApplications returns the user's applications in collection
// (insertion) order.
func (s *JobServiceImpl) GetUserApplications(userID string) []models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Application, 0)
	for _, a := range s.applications {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out
}

// GetJobApplications returns a job's applications in collection (insertion)
// order.
func (s *JobServiceImpl) GetJobApplications(jobID string) []models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Application, 0)
	for _, a := range s.applications {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out
}

func (s *JobServiceImpl) Applications() []models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Application, len(s.applications))
	copy(out, s.applications)
	return out
}

// Stats computes the admin dashboard aggregates from the mirrors.
func (s *JobServiceImpl) Stats() DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := DashboardStats{
		TotalJobs:         len(s.jobs),
		TotalApplications: len(s.applications),
	}

	applicants := make(map[string]struct{})
	for _, a := range s.applications {
		applicants[a.UserID] = struct{}{}
		switch a.Status {
		case models.ApplicationStatusPending:
			stats.PendingApplications++
		case models.ApplicationStatusAccepted:
			stats.AcceptedApplications++
		case models.ApplicationStatusRejected:
			stats.RejectedApplications++
		}
	}
	stats.UniqueApplicants = len(applicants)

	recent := make([]models.Application, len(s.applications))
	copy(recent, s.applications)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].AppliedAt.After(recent[j].AppliedAt)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.RecentApplications = recent

	return stats
}

// jobIndex looks up a job in the mirror. Callers hold s.mu.
func (s *JobServiceImpl) jobIndex(id string) int {
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *JobServiceImpl) notifyJobNotFound(title string) {
	s.notifier.Notify(notify.Notification{
		Title:       title,
		Description: "Job not found",
		Severity:    notify.SeverityError,
	})
}
