package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lumenhq/lumen-api/internal/dto"
	"github.com/lumenhq/lumen-api/internal/service"
	"github.com/lumenhq/lumen-api/internal/utils"
)

// SearchHandler wires the recent-search history endpoints.
type SearchHandler struct {
	service service.SearchService
	logger  zerolog.Logger
}

// NewSearchHandler constructs the handler.
func NewSearchHandler(service service.SearchService, logger zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		logger:  logger.With().Str("component", "search_handler").Logger(),
	}
}

// Register attaches search endpoints to the router group.
func (h *SearchHandler) Register(router fiber.Router) {
	router.Get("", h.recent)
	router.Post("", h.record)
	router.Delete("", h.clear)
}

func (h *SearchHandler) recent(c *fiber.Ctx) error {
	terms, err := h.service.Recent(c.Context())
	if err != nil {
		return sendInternalError(c, h.logger, err, "failed to load search history")
	}
	return utils.SendSuccess(c, "recent searches retrieved", terms)
}

func (h *SearchHandler) record(c *fiber.Ctx) error {
	var payload dto.SearchRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	terms, err := h.service.Record(c.Context(), payload.Term)
	if err != nil {
		return sendInternalError(c, h.logger, err, "failed to record search")
	}
	return utils.SendSuccess(c, "search recorded", terms)
}

func (h *SearchHandler) clear(c *fiber.Ctx) error {
	if err := h.service.Clear(c.Context()); err != nil {
		return sendInternalError(c, h.logger, err, "failed to clear search history")
	}
	return utils.SendSuccess(c, "search history cleared", nil)
}
