package models

import (
	"time"
)

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// ValidSignupRole reports whether role is one of the roles an account can
// be created with. Admin accounts are seeded out of band, never through
// signup, and the role is fixed afterwards.
func ValidSignupRole(role string) bool {
	return role == RolePatient || role == RoleDoctor
}

type User struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	Name                string    `json:"name"`
	Email               string    `json:"email" gorm:"unique"`
	Password            string    `json:"password,omitempty"`
	Role                string    `json:"role"`
	ResetToken          string    `json:"-"`
	ResetTokenExpiresAt time.Time `json:"-"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
