// Package middleware holds the echo middleware specific to the JSON API.
package middleware

import (
	"log/slog"
	"strings"

	"todo/internal/delivery/api/response"
	deliverycontext "todo/internal/delivery/context"
	domainerrors "todo/internal/domain/errors"
	"todo/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	contextKeyUserID = "userID"
	bearerScheme     = "bearer"
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	Logger       *slog.Logger
}

// AuthMiddleware guards routes with a bearer access token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: params.TokenService, logger: params.Logger}
}

// Authenticate rejects the request with 401 unless it carries a valid bearer token.
// On success the token subject is available through GetUserID.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return m.reject(c, "missing or malformed authorization header")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return m.reject(c, err.Error())
		}

		userID, err := claims.UserID()
		if err != nil {
			return m.reject(c, err.Error())
		}

		c.Set(contextKeyUserID, userID)

		return next(c)
	}
}

func (m *AuthMiddleware) reject(c echo.Context, reason string) error {
	deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
		Debug("Rejected unauthenticated request", slog.String("reason", reason), slog.String("path", c.Path()))

	return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), domainerrors.ErrUnauthorized.Message())
}

// bearerToken extracts the credentials of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}

// GetUserID returns the authenticated user id set by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(contextKeyUserID).(uuid.UUID)

	return userID, ok
}
