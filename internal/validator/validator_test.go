package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhub_backend/internal/models"
)

func TestValidateJobInput(t *testing.T) {
	v := New()

	valid := models.JobInput{
		Title: "X", Company: "Y", Location: "Z",
		Type: models.JobTypeFullTime, Salary: "$1",
		Description: "d", Requirements: []string{"r1"},
	}
	assert.NoError(t, v.Validate(&valid))

	tests := []struct {
		name   string
		mutate func(*models.JobInput)
		field  string
	}{
		{"missing title", func(in *models.JobInput) { in.Title = "" }, "title"},
		{"unknown type", func(in *models.JobInput) { in.Type = "Gig" }, "type"},
		{"no requirements", func(in *models.JobInput) { in.Requirements = nil }, "requirements"},
		{"blank requirement entry", func(in *models.JobInput) { in.Requirements = []string{""} }, "requirements[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			err := v.Validate(&in)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Errors, tt.field)
		})
	}
}

func TestValidateRegisterInput(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&models.RegisterInput{
		Name: "Alice", Email: "a@x.com", Password: "pw", Role: models.UserRoleAdmin,
	}))

	// Role is optional; empty means the default applies upstream.
	assert.NoError(t, v.Validate(&models.RegisterInput{
		Name: "Alice", Email: "a@x.com", Password: "pw",
	}))

	err := v.Validate(&models.RegisterInput{
		Name: "Alice", Email: "not-an-email", Password: "pw",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "email")

	err = v.Validate(&models.RegisterInput{
		Name: "Alice", Email: "a@x.com", Password: "pw", Role: "superuser",
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "role")
}
