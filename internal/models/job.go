package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Job is a posting. Requirements are stored as a JSON-encoded array in the
// relational backend (datatypes.JSONSlice handles the column encoding).
type Job struct {
	ID           string                      `json:"id" gorm:"primaryKey"`
	Title        string                      `json:"title" gorm:"not null"`
	Company      string                      `json:"company" gorm:"not null"`
	Location     string                      `json:"location" gorm:"not null"`
	Type         JobType                     `json:"type" gorm:"not null"`
	Salary       string                      `json:"salary" gorm:"not null"`
	Description  string                      `json:"description" gorm:"not null"`
	Requirements datatypes.JSONSlice[string] `json:"requirements" gorm:"not null"`
	CreatedBy    string                      `json:"createdBy" gorm:"column:created_by;index:idx_jobs_created_by;not null"`
	PostedAt     time.Time                   `json:"postedAt" gorm:"column:posted_at"`
	UpdatedAt    *time.Time                  `json:"updatedAt,omitempty" gorm:"column:updated_at;autoUpdateTime:false"`
}

func (Job) TableName() string { return "jobs" }

// JobInput carries the caller-supplied fields for a new posting.
type JobInput struct {
	Title        string   `json:"title" validate:"required"`
	Company      string   `json:"company" validate:"required"`
	Location     string   `json:"location" validate:"required"`
	Type         JobType  `json:"type" validate:"required,jobtype"`
	Salary       string   `json:"salary" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Requirements []string `json:"requirements" validate:"required,min=1,dive,required"`
}

// JobUpdate is a partial update; nil fields are left untouched.
type JobUpdate struct {
	Title        *string  `json:"title,omitempty"`
	Company      *string  `json:"company,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Type         *JobType `json:"type,omitempty" validate:"omitempty,jobtype"`
	Salary       *string  `json:"salary,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}

// NewJob builds a posting from validated input with a fresh ID and posting
// time. Blank requirement entries are assumed to be filtered already.
func NewJob(input JobInput, createdBy string) *Job {
	return &Job{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Company:      input.Company,
		Location:     input.Location,
		Type:         input.Type,
		Salary:       input.Salary,
		Description:  input.Description,
		Requirements: datatypes.NewJSONSlice(input.Requirements),
		CreatedBy:    createdBy,
		PostedAt:     time.Now().UTC(),
	}
}

// FilterBlankRequirements drops empty and whitespace-only entries, preserving
// order. Postings must keep at least one entry after filtering.
func FilterBlankRequirements(reqs []string) []string {
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if strings.TrimSpace(r) != "" {
			out = append(out, r)
		}
	}
	return out
}
