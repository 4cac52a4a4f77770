package handler

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/lumenhq/lumen-api/internal/service"
)

// RealtimeHandler streams submission events to connected dashboards over a
// websocket.
type RealtimeHandler struct {
	notifications service.NotificationService
	logger        zerolog.Logger
}

// NewRealtimeHandler constructs the handler.
func NewRealtimeHandler(notifications service.NotificationService, logger zerolog.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		notifications: notifications,
		logger:        logger.With().Str("component", "realtime_handler").Logger(),
	}
}

// Register binds the websocket upgrade under the provided router group.
func (h *RealtimeHandler) Register(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(h.handleConnection))
}

func (h *RealtimeHandler) handleConnection(conn *websocket.Conn) {
	userID := websocketUserID(conn)
	if userID == "" {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "user id missing"))
		_ = conn.Close()
		return
	}

	events, cancel := h.notifications.Subscribe(userID)
	defer cancel()

	h.logger.Info().Str("user_id", userID).Msg("realtime websocket connected")
	defer h.logger.Info().Str("user_id", userID).Msg("realtime websocket disconnected")

	// The read pump only detects the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func websocketUserID(conn *websocket.Conn) string {
	if v := conn.Locals("user_id"); v != nil {
		if id, ok := v.(string); ok && strings.TrimSpace(id) != "" {
			return strings.TrimSpace(id)
		}
		if s := strings.TrimSpace(fmt.Sprint(v)); s != "" && s != "<nil>" {
			return s
		}
	}
	return strings.TrimSpace(conn.Query("user"))
}
