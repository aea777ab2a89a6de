package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	apimiddleware "todo/internal/delivery/api/middleware"
	"todo/internal/delivery/api/validator"
	"todo/internal/domain/service"
	mockService "todo/internal/mocks/service"
	mockUsecase "todo/internal/mocks/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testToken = "valid-token"

type testServer struct {
	echo   *echo.Echo
	authUC *mockUsecase.MockAuthUsecase
	taskUC *mockUsecase.MockTaskUsecase
	userID uuid.UUID
}

// newTestServer mounts the handlers behind the real auth middleware. testToken authenticates as userID.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userID := uuid.New()

	tokenSvc := mockService.NewMockTokenService(t)
	tokenSvc.EXPECT().ValidateToken(testToken).
		Return(&service.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()}}, nil).
		Maybe()

	authUC := mockUsecase.NewMockAuthUsecase(t)
	taskUC := mockUsecase.NewMockTaskUsecase(t)

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(logger).HandleHTTPError

	authMW := apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{TokenService: tokenSvc, Logger: logger})
	authHandler := NewAuthHandler(AuthHandlerParams{AuthUC: authUC})
	taskHandler := NewTaskHandler(TaskHandlerParams{TaskUC: taskUC})

	e.GET("/health", HealthCheck)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	tasks := e.Group("/tasks", authMW.Authenticate)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/dates", taskHandler.AvailableDates)
	tasks.GET("/months", taskHandler.AvailableMonths)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	return &testServer{echo: e, authUC: authUC, taskUC: taskUC, userID: userID}
}

func (s *testServer) do(method, target, body string, authenticated bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authenticated {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+testToken)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	body := decodeBody(t, rec)
	info, ok := body["error"].(map[string]any)
	require.True(t, ok, "response has no error object: %s", rec.Body.String())

	code, _ := info["code"].(string)

	return code
}

func assertStatus(t *testing.T, want int, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}

