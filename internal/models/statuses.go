package models

type UserRole string
type JobType string
type ApplicationStatus string

const (
	UserRoleJobseeker UserRole = "jobseeker"
	UserRoleAdmin     UserRole = "admin"

	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeFreelance  JobType = "Freelance"
	JobTypeInternship JobType = "Internship"

	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusReviewing ApplicationStatus = "reviewing"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)
