package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lumenhq/lumen-api/internal/dto"
	"github.com/lumenhq/lumen-api/internal/service"
	"github.com/lumenhq/lumen-api/internal/utils"
)

// EnrollmentHandler wires the enrollment endpoints.
type EnrollmentHandler struct {
	service service.EnrollmentService
	logger  zerolog.Logger
}

// NewEnrollmentHandler constructs the handler.
func NewEnrollmentHandler(service service.EnrollmentService, logger zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service: service,
		logger:  logger.With().Str("component", "enrollment_handler").Logger(),
	}
}

// Register attaches enrollment endpoints to the router group.
func (h *EnrollmentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.enroll)
	router.Patch("/progress", h.updateProgress)
}

// list filters by student, instructor or course query; exactly one is
// expected.
func (h *EnrollmentHandler) list(c *fiber.Ctx) error {
	ctx := c.Context()
	if studentID := strings.TrimSpace(c.Query("student")); studentID != "" {
		enrollments, err := h.service.ListByStudent(ctx, studentID)
		if err != nil {
			return sendInternalError(c, h.logger, err, "failed to list enrollments")
		}
		return utils.SendSuccess(c, "enrollments retrieved", enrollments)
	}
	if instructorID := strings.TrimSpace(c.Query("instructor")); instructorID != "" {
		enrollments, err := h.service.ListByInstructor(ctx, instructorID)
		if err != nil {
			return sendInternalError(c, h.logger, err, "failed to list enrollments")
		}
		return utils.SendSuccess(c, "enrollments retrieved", enrollments)
	}
	if courseID := strings.TrimSpace(c.Query("course")); courseID != "" {
		enrollments, err := h.service.ListByCourse(ctx, courseID)
		if err != nil {
			return sendInternalError(c, h.logger, err, "failed to list enrollments")
		}
		return utils.SendSuccess(c, "enrollments retrieved", enrollments)
	}
	return utils.SendError(c, fiber.StatusBadRequest, "student, instructor or course query is required")
}

func (h *EnrollmentHandler) enroll(c *fiber.Ctx) error {
	var payload dto.EnrollRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	enrollment, err := h.service.Enroll(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, service.ErrCourseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrAlreadyEnrolled):
			return utils.SendError(c, fiber.StatusConflict, "student already enrolled")
		default:
			return sendInternalError(c, h.logger, err, "failed to enroll student")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "enrolled", enrollment)
}

func (h *EnrollmentHandler) updateProgress(c *fiber.Ctx) error {
	var payload dto.ProgressUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	enrollment, err := h.service.UpdateProgress(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, service.ErrEnrollmentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "enrollment not found")
		default:
			return sendInternalError(c, h.logger, err, "failed to update progress")
		}
	}

	return utils.SendSuccess(c, "progress updated", enrollment)
}
