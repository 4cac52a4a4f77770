package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lumenhq/lumen-api/internal/dto"
	"github.com/lumenhq/lumen-api/internal/middleware"
	"github.com/lumenhq/lumen-api/internal/service"
	"github.com/lumenhq/lumen-api/internal/utils"
)

// UserHandler wires the identity endpoints.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register attaches user endpoints to the router group.
func (h *UserHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/instructor/:id/students", h.instructorStudents)
	router.Get("/:id", h.get)
	router.Patch("/:id", middleware.WithAuth(h.update, middleware.AuthOptions{RequireUser: true}))
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context())
	if err != nil {
		return sendInternalError(c, h.logger, err, "failed to list users")
	}
	return utils.SendSuccess(c, "users retrieved", users)
}

func (h *UserHandler) get(c *fiber.Ctx) error {
	user, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		}
		return sendInternalError(c, h.logger, err, "failed to load user")
	}
	return utils.SendSuccess(c, "user retrieved", user)
}

func (h *UserHandler) update(c *fiber.Ctx) error {
	var payload dto.UserUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	// Profiles are self-service: the path id must match the caller.
	if callerID := userIDFromContext(c); callerID != "" && callerID != c.Params("id") {
		return utils.SendError(c, fiber.StatusForbidden, "cannot update another user's profile")
	}

	user, err := h.service.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		default:
			return sendInternalError(c, h.logger, err, "failed to update user")
		}
	}
	return utils.SendSuccess(c, "user updated", user)
}

func (h *UserHandler) instructorStudents(c *fiber.Ctx) error {
	students, err := h.service.StudentsOfInstructor(c.Context(), c.Params("id"))
	if err != nil {
		return sendInternalError(c, h.logger, err, "failed to list students")
	}
	return utils.SendSuccess(c, "students retrieved", students)
}
