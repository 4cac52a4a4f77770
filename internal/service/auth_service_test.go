package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/lumenhq/lumen-api/internal/dto"
	"github.com/lumenhq/lumen-api/internal/models"
	"github.com/lumenhq/lumen-api/internal/repository"
)

const testSecret = "test-secret"

func TestAuthServiceSignup(t *testing.T) {
	users := &memoryUserRepo{}
	sessions := &memorySessionRepo{}
	svc := NewAuthService(users, sessions, validator.New(validator.WithRequiredStructEnabled()), testSecret, testLogger())
	svc.(*authService).now = fixedClock("2026-03-01")

	response, err := svc.Signup(context.Background(), dto.SignupRequest{
		Name: "Alice Johnson", Email: "student1@email.com", Username: "alicej",
		Password: "password123", Role: "Student",
	})
	require.NoError(t, err)
	require.Equal(t, "student1@email.com", response.User.ID)
	require.Equal(t, "2026-03-01", response.User.Joined)
	require.NotEmpty(t, response.Token)

	// Signup logs the new identity in.
	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, "student1@email.com", current.ID)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(response.Token, claims, func(token *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(fixedClock("2026-03-01")))
	require.NoError(t, err)
	require.Equal(t, "student1@email.com", claims["sub"])
	require.Equal(t, "Student", claims["role"])
}

func TestAuthServiceSignupRejectsDuplicateEmail(t *testing.T) {
	users := &memoryUserRepo{users: []models.User{{ID: "student1@email.com", Email: "student1@email.com", Username: "alicej"}}}
	svc := NewAuthService(users, &memorySessionRepo{}, validator.New(validator.WithRequiredStructEnabled()), testSecret, testLogger())

	_, err := svc.Signup(context.Background(), dto.SignupRequest{
		Name: "Alice Johnson", Email: "student1@email.com", Username: "other",
		Password: "password123", Role: "Student",
	})
	require.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestAuthServiceLogin(t *testing.T) {
	users := &memoryUserRepo{users: []models.User{{
		ID: "student1@email.com", Name: "Alice Johnson", Email: "student1@email.com",
		Username: "alicej", Password: "password123", Role: models.RoleStudent,
	}}}
	sessions := &memorySessionRepo{}
	svc := NewAuthService(users, sessions, validator.New(validator.WithRequiredStructEnabled()), testSecret, testLogger())

	// By email.
	response, err := svc.Login(context.Background(), dto.LoginRequest{Identifier: "student1@email.com", Password: "password123"})
	require.NoError(t, err)
	require.Equal(t, "student1@email.com", response.User.ID)
	require.NotEmpty(t, response.Token)

	// By username.
	response, err = svc.Login(context.Background(), dto.LoginRequest{Identifier: "alicej", Password: "password123"})
	require.NoError(t, err)
	require.Equal(t, "Alice Johnson", response.User.Name)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Identifier: "alicej", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Identifier: "ghost@email.com", Password: "password123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceLogout(t *testing.T) {
	users := &memoryUserRepo{users: []models.User{{
		ID: "student1@email.com", Email: "student1@email.com", Username: "alicej", Password: "password123",
	}}}
	sessions := &memorySessionRepo{}
	svc := NewAuthService(users, sessions, validator.New(validator.WithRequiredStructEnabled()), testSecret, testLogger())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Identifier: "alicej", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))

	_, err = svc.Current(context.Background())
	require.ErrorIs(t, err, ErrNoSession)
}
