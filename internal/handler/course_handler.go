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

// CourseHandler wires the course catalog endpoints, including the review
// subresource.
type CourseHandler struct {
	courses     service.CourseService
	ratings     service.RatingService
	enrollments service.EnrollmentService
	users       service.UserService
	logger      zerolog.Logger
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(courses service.CourseService, ratings service.RatingService, enrollments service.EnrollmentService, users service.UserService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courses:     courses,
		ratings:     ratings,
		enrollments: enrollments,
		users:       users,
		logger:      logger.With().Str("component", "course_handler").Logger(),
	}
}

// Register attaches course endpoints to the router group. Write routes are
// guarded with the teacher role at the router level.
func (h *CourseHandler) Register(public fiber.Router, teacherOnly fiber.Router) {
	public.Get("", h.list)
	public.Get("/:id", h.get)
	public.Get("/:id/reviews", h.reviews)
	public.Get("/:id/rating-stats", h.ratingStats)
	public.Get("/:id/reviews/:studentId", h.userRating)
	public.Get("/:id/enrollments", h.courseEnrollments)
	public.Put("/:id/reviews", h.rate)

	teacherOnly.Post("", h.create)
	teacherOnly.Patch("/:id", h.update)
	teacherOnly.Delete("/:id", h.delete)
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	ctx := c.Context()
	if instructorID := strings.TrimSpace(c.Query("instructor")); instructorID != "" {
		courses, err := h.courses.ListByInstructor(ctx, instructorID)
		if err != nil {
			return sendInternalError(c, h.logger, err, "failed to list courses")
		}
		return utils.SendSuccess(c, "courses retrieved", courses)
	}

	courses, err := h.courses.List(ctx)
	if err != nil {
		return sendInternalError(c, h.logger, err, "failed to list courses")
	}
	return utils.SendSuccess(c, "courses retrieved", courses)
}

func (h *CourseHandler) get(c *fiber.Ctx) error {
	course, err := h.courses.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		}
		return sendInternalError(c, h.logger, err, "failed to load course")
	}
	return utils.SendSuccess(c, "course retrieved", course)
}

func (h *CourseHandler) create(c *fiber.Ctx) error {
	var payload dto.CourseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	instructorID := userIDFromContext(c)
	instructor, err := h.users.Get(c.Context(), instructorID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusUnauthorized, "unknown instructor")
		}
		return sendInternalError(c, h.logger, err, "failed to resolve instructor")
	}

	course, err := h.courses.Create(c.Context(), payload, instructorID, instructor.Name)
	if err != nil {
		if isValidationError(err) {
			return sendValidationError(c, err)
		}
		return sendInternalError(c, h.logger, err, "failed to create course")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "course created", course)
}

func (h *CourseHandler) update(c *fiber.Ctx) error {
	var payload dto.CourseUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	course, err := h.courses.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, service.ErrCourseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		default:
			return sendInternalError(c, h.logger, err, "failed to update course")
		}
	}
	return utils.SendSuccess(c, "course updated", course)
}

func (h *CourseHandler) delete(c *fiber.Ctx) error {
	if err := h.courses.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		}
		return sendInternalError(c, h.logger, err, "failed to delete course")
	}
	return utils.SendSuccess(c, "course deleted", nil)
}

func (h *CourseHandler) reviews(c *fiber.Ctx) error {
	reviews, err := h.ratings.Reviews(c.Context(), c.Params("id"))
	if err != nil {
		return sendInternalError(c, h.logger, err, "failed to list reviews")
	}
	return utils.SendSuccess(c, "reviews retrieved", reviews)
}

func (h *CourseHandler) rate(c *fiber.Ctx) error {
	var payload dto.RatingRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	course, err := h.ratings.AddOrUpdate(c.Context(), c.Params("id"), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return sendValidationError(c, err)
		case errors.Is(err, service.ErrCourseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		default:
			return sendInternalError(c, h.logger, err, "failed to record rating")
		}
	}
	return utils.SendSuccess(c, "rating recorded", course)
}

func (h *CourseHandler) ratingStats(c *fiber.Ctx) error {
	stats, err := h.ratings.Stats(c.Context(), c.Params("id"))
	if err != nil {
		return sendInternalError(c, h.logger, err, "failed to compute rating stats")
	}
	return utils.SendSuccess(c, "rating stats retrieved", stats)
}

func (h *CourseHandler) userRating(c *fiber.Ctx) error {
	review, err := h.ratings.UserRating(c.Context(), c.Params("id"), c.Params("studentId"))
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "review not found")
		}
		return sendInternalError(c, h.logger, err, "failed to load review")
	}
	return utils.SendSuccess(c, "review retrieved", review)
}

func (h *CourseHandler) courseEnrollments(c *fiber.Ctx) error {
	enrollments, err := h.enrollments.ListByCourse(c.Context(), c.Params("id"))
	if err != nil {
		return sendInternalError(c, h.logger, err, "failed to list course enrollments")
	}
	return utils.SendSuccess(c, "enrollments retrieved", enrollments)
}
