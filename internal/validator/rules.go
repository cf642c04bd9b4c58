package validator

import (
	"github.com/go-playground/validator/v10"

	"jobhub_backend/internal/models"
)

// registerCustomRules wires the domain enum rules into the validator.
func registerCustomRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"userrole":  validUserRole,
		"jobtype":   validJobType,
		"appstatus": validApplicationStatus,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func validUserRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case models.UserRoleJobseeker, models.UserRoleAdmin:
		return true
	}
	return false
}

func validJobType(fl validator.FieldLevel) bool {
	switch models.JobType(fl.Field().String()) {
	case models.JobTypeFullTime, models.JobTypePartTime, models.JobTypeContract,
		models.JobTypeFreelance, models.JobTypeInternship:
		return true
	}
	return false
}

func validApplicationStatus(fl validator.FieldLevel) bool {
	switch models.ApplicationStatus(fl.Field().String()) {
	case models.ApplicationStatusPending, models.ApplicationStatusReviewing,
		models.ApplicationStatusAccepted, models.ApplicationStatusRejected:
		return true
	}
	return false
}
