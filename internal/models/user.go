package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the administrative account. In practice there is exactly one.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the login name (unique).
	Username string

	// PasswordHash is the bcrypt hash of the password. Never the password itself.
	PasswordHash string

	// CreatedAt is when the account was created.
	CreatedAt time.Time
}

// NewUser creates a user with a fresh ID.
func NewUser(username, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
