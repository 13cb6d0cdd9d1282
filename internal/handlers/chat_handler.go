package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/agent"
)

// Messenger runs one chat turn.
type Messenger interface {
	SendMessage(ctx context.Context, req agent.ChatRequest) agent.ChatResponse
}

type ChatHandler struct {
	engine Messenger
}

func NewChatHandler(engine Messenger) *ChatHandler {
	return &ChatHandler{engine: engine}
}

// SendMessage godoc
// @Summary Chat with the business assistant
// @Description Runs one chat turn. Without customer_id no tools are used. The answer starts with "[fallback]" when the model could not be reached.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body agent.ChatRequest true "Chat message"
// @Success 200 {object} agent.ChatResponse
// @Failure 400 {object} map[string]string
// @Router /chat [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req agent.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message is required"})
	}
	if req.CustomerID != nil && *req.CustomerID == 0 {
		req.CustomerID = nil
	}

	return c.JSON(h.engine.SendMessage(c.UserContext(), req))
}
