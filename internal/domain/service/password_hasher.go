// Package service defines interfaces for core, stateless domain logic.
package service

// PasswordHasher abstracts the password hashing algorithm.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash. A malformed hash never matches.
	Check(password, hash string) bool
}
