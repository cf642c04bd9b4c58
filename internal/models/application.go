package models

import (
	"time"

	"github.com/google/uuid"
)

// Application ties an applicant to a posting. Applicant contact fields are
// denormalized onto the record, matching what review screens display.
type Application struct {
	ID          string            `json:"id" gorm:"primaryKey"`
	JobID       string            `json:"jobId" gorm:"column:job_id;index:idx_applications_job_id;not null"`
	UserID      string            `json:"userId" gorm:"column:user_id;index:idx_applications_user_id;not null"`
	UserName    string            `json:"userName" gorm:"column:user_name;not null"`
	UserEmail   string            `json:"userEmail" gorm:"column:user_email;not null"`
	Phone       string            `json:"phone" gorm:"not null"`
	CoverLetter string            `json:"coverLetter" gorm:"column:cover_letter;not null"`
	Resume      string            `json:"resume" gorm:"not null"`
	Status      ApplicationStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	AppliedAt   time.Time         `json:"appliedAt" gorm:"column:applied_at"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty" gorm:"column:updated_at;autoUpdateTime:false"`
}

func (Application) TableName() string { return "applications" }

// ApplicationInput carries the applicant-supplied fields.
type ApplicationInput struct {
	UserID      string `json:"userId" validate:"required"`
	UserName    string `json:"userName" validate:"required"`
	UserEmail   string `json:"userEmail" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	CoverLetter string `json:"coverLetter" validate:"required"`
	Resume      string `json:"resume" validate:"required"`
}

// NewApplication builds a pending application with a fresh ID.
func NewApplication(jobID string, input ApplicationInput) *Application {
	return &Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		UserID:      input.UserID,
		UserName:    input.UserName,
		UserEmail:   input.UserEmail,
		Phone:       input.Phone,
		CoverLetter: input.CoverLetter,
		Resume:      input.Resume,
		Status:      ApplicationStatusPending,
		AppliedAt:   time.Now().UTC(),
	}
}
