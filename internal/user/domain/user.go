package domain

import (
	"errors"
	"time"
)

// ErrEmailTaken is returned by Create when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// User is an account that can sign in to the feed.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	FirstName    *string
	LastName     *string
	Language     string
	Timezone     string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleAdmin Role = "admin"
	RolePower Role = "power"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePower, RoleUser:
		return true
	}
	return false
}

// ProfileUpdate holds the profile fields a user may change. Nil fields are left unchanged.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Language  *string
	Timezone  *string
}

// Validate validates the user for persistence and fills defaults. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if !u.Role.Valid() {
		return errors.New("invalid role")
	}
	if u.Language == "" {
		u.Language = "en"
	}
	if u.Timezone == "" {
		u.Timezone = "UTC"
	}
	return nil
}
