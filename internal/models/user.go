package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Credentials are stored as-is and compared
// exactly at login; the session copy handed to consumers never carries the
// password (see Sanitized).
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"password,omitempty" gorm:"not null"`
	Role      UserRole  `json:"role" gorm:"type:varchar(20);default:'jobseeker'"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (User) TableName() string { return "users" }

// NewUser builds a user record with a fresh ID and creation time.
func NewUser(name, email, password string, role UserRole) *User {
	if role == "" {
		role = UserRoleJobseeker
	}
	return &User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  password,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
}

// Sanitized returns a copy with the password stripped. Session pointers and
// anything handed outside the auth service go through this.
func (u *User) Sanitized() *User {
	c := *u
	c.Password = ""
	return &c
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required"`
	Role     UserRole `json:"role" validate:"omitempty,userrole"`
}
