package service

import (
	"time"

	"todo/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is wrapped by every ValidateToken failure.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the registered claims of an access token. The subject holds the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(ErrInvalidToken, "subject is not a user id")
	}

	return id, nil
}

// TokenService signs and verifies access tokens.
type TokenService interface {
	GenerateToken(subject uuid.UUID, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	AccessTokenTTL() time.Duration
}
