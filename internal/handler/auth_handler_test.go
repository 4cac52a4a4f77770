package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lumenhq/lumen-api/internal/dto"
	"github.com/lumenhq/lumen-api/internal/handler"
	"github.com/lumenhq/lumen-api/internal/repository"
	"github.com/lumenhq/lumen-api/internal/service"
)

type mockAuthService struct {
	lastSignup dto.SignupRequest
	lastLogin  dto.LoginRequest
	response   dto.AuthResponse
	current    dto.UserResponse
	signupErr  error
	loginErr   error
	currentErr error
	loggedOut  bool
}

func (m *mockAuthService) Signup(_ context.Context, payload dto.SignupRequest) (dto.AuthResponse, error) {
	m.lastSignup = payload
	if m.signupErr != nil {
		return dto.AuthResponse{}, m.signupErr
	}
	return m.response, nil
}

func (m *mockAuthService) Login(_ context.Context, payload dto.LoginRequest) (dto.AuthResponse, error) {
	m.lastLogin = payload
	if m.loginErr != nil {
		return dto.AuthResponse{}, m.loginErr
	}
	return m.response, nil
}

func (m *mockAuthService) Logout(_ context.Context) error {
	m.loggedOut = true
	return nil
}

func (m *mockAuthService) Current(_ context.Context) (dto.UserResponse, error) {
	if m.currentErr != nil {
		return dto.UserResponse{}, m.currentErr
	}
	return m.current, nil
}

func newAuthApp(svc service.AuthService) *fiber.App {
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/auth"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func TestAuthHandler_SignupCreated(t *testing.T) {
	svc := &mockAuthService{response: dto.AuthResponse{
		User:  dto.UserResponse{ID: "nora@lumen.io", Name: "Nora Reyes"},
		Token: "token-1",
	}}
	app := newAuthApp(svc)

	payload := dto.SignupRequest{
		Name:     "Nora Reyes",
		Email:    "nora@lumen.io",
		Username: "nora",
		Password: "secret",
		Role:     "Teacher",
	}
	resp := postJSON(t, app, "/api/v1/auth/signup", payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Success bool             `json:"success"`
		Data    dto.AuthResponse `json:"data"`
		Message string           `json:"message"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Equal(t, "account created", response.Message)
	require.Equal(t, "token-1", response.Data.Token)
	require.Equal(t, "nora@lumen.io", svc.lastSignup.Email)
}

func TestAuthHandler_SignupDuplicateEmailConflicts(t *testing.T) {
	svc := &mockAuthService{signupErr: repository.ErrEmailTaken}
	app := newAuthApp(svc)

	payload := dto.SignupRequest{
		Name:     "Nora Reyes",
		Email:    "nora@lumen.io",
		Username: "nora",
		Password: "secret",
		Role:     "Teacher",
	}
	resp := postJSON(t, app, "/api/v1/auth/signup", payload)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	svc := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	app := newAuthApp(svc)

	resp := postJSON(t, app, "/api/v1/auth/login", dto.LoginRequest{Identifier: "nora", Password: "wrong"})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var response struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &response)
	require.False(t, response.Success)
	require.Equal(t, "invalid credentials", response.Message)
}

func TestAuthHandler_MeWithoutSession(t *testing.T) {
	svc := &mockAuthService{currentErr: service.ErrNoSession}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &mockAuthService{}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, svc.loggedOut)
}
