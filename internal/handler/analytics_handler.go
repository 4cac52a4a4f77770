package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lumenhq/lumen-api/internal/service"
	"github.com/lumenhq/lumen-api/internal/utils"
)

// AnalyticsHandler wires the derived-analytics endpoints.
type AnalyticsHandler struct {
	service service.AnalyticsService
	logger  zerolog.Logger
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(service service.AnalyticsService, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.With().Str("component", "analytics_handler").Logger(),
	}
}

// Register attaches analytics endpoints to the router group.
func (h *AnalyticsHandler) Register(router fiber.Router) {
	router.Get("/instructor/:id", h.instructor)
	router.Get("/student/:id", h.student)
}

func (h *AnalyticsHandler) instructor(c *fiber.Ctx) error {
	summary, err := h.service.Instructor(c.Context(), c.Params("id"))
	if err != nil {
		return sendInternalError(c, h.logger, err, "failed to compute instructor analytics")
	}
	return utils.SendSuccess(c, "analytics retrieved", summary)
}

func (h *AnalyticsHandler) student(c *fiber.Ctx) error {
	summary, err := h.service.Student(c.Context(), c.Params("id"))
	if err != nil {
		return sendInternalError(c, h.logger, err, "failed to compute student analytics")
	}
	return utils.SendSuccess(c, "analytics retrieved", summary)
}
