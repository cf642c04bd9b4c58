package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserDefaultsRole(t *testing.T) {
	u := NewUser("Alice", "a@x.com", "pw", "")
	assert.Equal(t, UserRoleJobseeker, u.Role)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestSanitizedStripsPassword(t *testing.T) {
	u := NewUser("Alice", "a@x.com", "pw", UserRoleAdmin)
	s := u.Sanitized()

	assert.Empty(t, s.Password)
	assert.Equal(t, u.ID, s.ID)
	// The original is untouched.
	assert.Equal(t, "pw", u.Password)

	// The stripped password is absent from serialized session data, not
	// just blank.
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
}

func TestFilterBlankRequirements(t *testing.T) {
	assert.Equal(t,
		[]string{"r1", "r2"},
		FilterBlankRequirements([]string{"", "r1", "   ", "r2"}))
	assert.Empty(t, FilterBlankRequirements([]string{"", "\t"}))
}
