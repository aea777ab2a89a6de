// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns tasks. Email is unique and compared as stored.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email        string    // Login identifier, unique across all users.
	PasswordHash string    // bcrypt hash of the password. Never leaves the auth flow.
	CreatedAt    time.Time // Timestamp of when this user account was created.
}
