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

// AssignmentHandler wires assignment and submission endpoints.
type AssignmentHandler struct {
	service service.AssignmentService
	logger  zerolog.Logger
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(service service.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches assignment endpoints to the router groups.
func (h *AssignmentHandler) Register(router fiber.Router, teacherOnly fiber.Router, studentOnly fiber.Router) {
	router.Get("", h.list)
	teacherOnly.Post("", h.create)
	studentOnly.Post("/:id/submissions", h.submit)
	teacherOnly.Patch("/:id/submissions/:studentId/grade", h.grade)
}

func (h *AssignmentHandler) list(c *fiber.Ctx) error {
	ctx := c.Context()
	if instructorID := strings.TrimSpace(c.Query("instructor")); instructorID != "" {
		assignments, err := h.service.ListByInstructor(ctx, instructorID)
		if err != nil {
			return sendInternalError(c, h.logger, err, "failed to list assignments")
		}
		return utils.SendSuccess(c, "assignments retrieved", assignments)
	}
	if courseID := strings.TrimSpace(c.Query("course")); courseID != "" {
		assignments, err := h.service.ListByCourse(ctx, courseID)
		if err != nil {
			return sendInternalError(c, h.logger, err, "failed to list assignments")
		}
		return utils.SendSuccess(c, "assignments retrieved", assignments)
	}
	if studentID := strings.TrimSpace(c.Query("student")); studentID != "" {
		assignments, err := h.service.ListForStudent(ctx, studentID)
		if err != nil {
			return sendInternalError(c, h.logger, err, "failed to list assignments")
		}
		return utils.SendSuccess(c, "assignments retrieved", assignments)
	}
	return utils.SendError(c, fiber.StatusBadRequest, "instructor, course or student query is required")
}

func (h *AssignmentHandler) create(c *fiber.Ctx) error {
	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.service.Create(c.Context(), payload, userIDFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, service.ErrCourseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		default:
			return sendInternalError(c, h.logger, err, "failed to create assignment")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment created", assignment)
}

func (h *AssignmentHandler) submit(c *fiber.Ctx) error {
	var payload dto.SubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if payload.StudentID == "" {
		payload.StudentID = userIDFromContext(c)
	}

	submission, err := h.service.Submit(c.Context(), c.Params("id"), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, service.ErrAssignmentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		default:
			return sendInternalError(c, h.logger, err, "failed to submit assignment")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "submission received", submission)
}

func (h *AssignmentHandler) grade(c *fiber.Ctx) error {
	var payload dto.GradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.Grade(c.Context(), c.Params("id"), c.Params("studentId"), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, service.ErrAssignmentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
		case errors.Is(err, service.ErrSubmissionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "submission not found")
		default:
			return sendInternalError(c, h.logger, err, "failed to grade submission")
		}
	}

	return utils.SendSuccess(c, "submission graded", submission)
}
