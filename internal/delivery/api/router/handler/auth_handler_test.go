package handler

import (
	"net/http"
	"testing"

	"todo/internal/domain/entity"
	domainerrors "todo/internal/domain/errors"
	"todo/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuthHandler_Register(t *testing.T) {
	t.Run("creates the user", func(t *testing.T) {
		srv := newTestServer(t)
		userID := uuid.New()
		srv.authUC.EXPECT().
			Register(mock.Anything, usecase.RegisterInput{Email: "ann@example.com", Password: "password123"}).
			Return(&usecase.RegisterOutput{User: &entity.User{ID: userID, Email: "ann@example.com", PasswordHash: "hash"}}, nil)

		rec := srv.do(http.MethodPost, "/auth/register", `{"email":"ann@example.com","password":"password123"}`, false)

		assertStatus(t, http.StatusCreated, rec)
		body := decodeBody(t, rec)
		assert.Equal(t, userID.String(), body["id"])
		assert.Equal(t, "ann@example.com", body["email"])
		assert.NotContains(t, rec.Body.String(), "hash")
	})

	t.Run("rejects a short password before the usecase", func(t *testing.T) {
		srv := newTestServer(t)

		rec := srv.do(http.MethodPost, "/auth/register", `{"email":"ann@example.com","password":"short"}`, false)

		assertStatus(t, http.StatusBadRequest, rec)
		assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), errorCode(t, rec))
		assert.Contains(t, rec.Body.String(), "password must be at least 8 characters")
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		srv := newTestServer(t)

		rec := srv.do(http.MethodPost, "/auth/register", `{"email":`, false)

		assertStatus(t, http.StatusBadRequest, rec)
		assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), errorCode(t, rec))
	})

	t.Run("reports a taken email", func(t *testing.T) {
		srv := newTestServer(t)
		srv.authUC.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrUserAlreadyExists)

		rec := srv.do(http.MethodPost, "/auth/register", `{"email":"ann@example.com","password":"password123"}`, false)

		assertStatus(t, http.StatusBadRequest, rec)
		body := decodeBody(t, rec)
		assert.Equal(t, domainerrors.ErrUserAlreadyExists.Message(), body["detail"])
		assert.Equal(t, domainerrors.ErrUserAlreadyExists.ErrorCode(), errorCode(t, rec))
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns a bearer token", func(t *testing.T) {
		srv := newTestServer(t)
		srv.authUC.EXPECT().
			Login(mock.Anything, usecase.LoginInput{Email: "ann@example.com", Password: "password123"}).
			Return(&usecase.LoginOutput{AccessToken: "signed", TokenType: usecase.TokenTypeBearer}, nil)

		rec := srv.do(http.MethodPost, "/auth/login", `{"email":"ann@example.com","password":"password123"}`, false)

		assertStatus(t, http.StatusOK, rec)
		body := decodeBody(t, rec)
		assert.Equal(t, "signed", body["access_token"])
		assert.Equal(t, "bearer", body["token_type"])
	})

	t.Run("wrong credentials", func(t *testing.T) {
		srv := newTestServer(t)
		srv.authUC.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrInvalidCredentials)

		rec := srv.do(http.MethodPost, "/auth/login", `{"email":"ann@example.com","password":"wrong-password"}`, false)

		assertStatus(t, http.StatusUnauthorized, rec)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		assert.Equal(t, domainerrors.ErrInvalidCredentials.ErrorCode(), errorCode(t, rec))
	})

	t.Run("missing password", func(t *testing.T) {
		srv := newTestServer(t)

		rec := srv.do(http.MethodPost, "/auth/login", `{"email":"ann@example.com"}`, false)

		assertStatus(t, http.StatusBadRequest, rec)
		assert.Contains(t, rec.Body.String(), "password is required")
	})
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/health", "", false)

	assertStatus(t, http.StatusOK, rec)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
