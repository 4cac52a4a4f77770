package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lumenhq/lumen-api/internal/dto"
	"github.com/lumenhq/lumen-api/internal/repository"
	"github.com/lumenhq/lumen-api/internal/service"
	"github.com/lumenhq/lumen-api/internal/utils"
)

// AuthHandler wires the session endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches auth endpoints to the router group.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/signup", h.signup)
	router.Post("/login", h.login)
	router.Post("/logout", h.logout)
	router.Get("/me", h.me)
}

func (h *AuthHandler) signup(c *fiber.Ctx) error {
	var payload dto.SignupRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Signup(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, repository.ErrEmailTaken), errors.Is(err, repository.ErrUsernameTaken):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			return sendInternalError(c, h.logger, err, "signup failed")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created", response)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Login(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid credentials")
		default:
			return sendInternalError(c, h.logger, err, "login failed")
		}
	}

	return utils.SendSuccess(c, "logged in", response)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.Context()); err != nil {
		return sendInternalError(c, h.logger, err, "logout failed")
	}
	return utils.SendSuccess(c, "logged out", nil)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	user, err := h.service.Current(c.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			return utils.SendError(c, fiber.StatusUnauthorized, "no active session")
		}
		return sendInternalError(c, h.logger, err, "failed to load session")
	}
	return utils.SendSuccess(c, "session retrieved", user)
}
