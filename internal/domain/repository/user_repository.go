// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"todo/internal/domain/entity"
	"todo/internal/errors"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrUserEmailTaken is returned by Create when the email is already stored.
var ErrUserEmailTaken = errors.New("user email already exists")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByEmail retrieves a single user by their exact email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. ID and CreatedAt are filled in on success.
	Create(ctx context.Context, user *entity.User) error
}
