package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/lumenhq/lumen-api/internal/dto"
	"github.com/lumenhq/lumen-api/internal/models"
	"github.com/lumenhq/lumen-api/internal/repository"
	"github.com/lumenhq/lumen-api/internal/storage"
)

var (
	// ErrInvalidCredentials indicates the identifier/password pair matched no user.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoSession indicates no identity is persisted as the current user.
	ErrNoSession = errors.New("no active session")
)

// tokenTTL bounds how long an issued bearer token stays valid.
const tokenTTL = 24 * time.Hour

// AuthService owns the session boundary: credential checks are exact string
// comparisons against the user collection, and the matched record is persisted
// verbatim as the current user. The issued JWT only references the identity;
// the session blob stays the source of truth.
type AuthService interface {
	Signup(ctx context.Context, payload dto.SignupRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (dto.UserResponse, error)
}

type authService struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	validator *validator.Validate
	secret    []byte
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService builds the auth boundary service.
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, validate *validator.Validate, secret string, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		sessions:  sessions,
		validator: validate,
		secret:    []byte(secret),
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

// Signup registers the identity and logs it in. The email doubles as the
// record id; uniqueness on email and username is enforced at creation only.
func (s *authService) Signup(ctx context.Context, payload dto.SignupRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	user := models.User{
		ID:       payload.Email,
		Name:     payload.Name,
		Email:    payload.Email,
		Username: payload.Username,
		Password: payload.Password,
		Role:     models.Role(payload.Role),
		Joined:   s.now().Format(models.DateLayout),
		Bio:      payload.Bio,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return dto.AuthResponse{}, err
	}
	if err := s.sessions.SetCurrentUser(ctx, user); err != nil {
		return dto.AuthResponse{}, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return dto.AuthResponse{User: dto.NewUserResponse(user), Token: token}, nil
}

// Login matches the identifier against email or username and the password by
// exact comparison, then persists the matched record as the current user.
func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	for _, user := range users {
		if (user.Email == payload.Identifier || user.Username == payload.Identifier) && user.Password == payload.Password {
			if err := s.sessions.SetCurrentUser(ctx, user); err != nil {
				return dto.AuthResponse{}, err
			}
			token, err := s.issueToken(user)
			if err != nil {
				return dto.AuthResponse{}, err
			}
			s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
			return dto.AuthResponse{User: dto.NewUserResponse(user), Token: token}, nil
		}
	}
	return dto.AuthResponse{}, ErrInvalidCredentials
}

func (s *authService) Logout(ctx context.Context) error {
	return s.sessions.ClearCurrentUser(ctx)
}

func (s *authService) Current(ctx context.Context) (dto.UserResponse, error) {
	user, err := s.sessions.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return dto.UserResponse{}, ErrNoSession
		}
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *authService) issueToken(user models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
