package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/tools"
)

type HealthHandler struct {
	registry *tools.Registry
	provider string
}

func NewHealthHandler(registry *tools.Registry, provider string) *HealthHandler {
	return &HealthHandler{registry: registry, provider: provider}
}

// GetHealth godoc
// @Summary Service health check
// @Description Check if API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"service":  "chatherine-api",
		"provider": h.provider,
		"tools":    len(h.registry.Tools()),
	})
}

// ToolInfo describes one tool the assistant can call.
type ToolInfo struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Mutates     bool                  `json:"mutates"`
	Parameters  jsonschema.Definition `json:"parameters" swaggertype:"object"`
}

// ListTools godoc
// @Summary List assistant tools
// @Description Returns the tool catalogue advertised to the model
// @Tags Health
// @Produce json
// @Success 200 {array} ToolInfo
// @Router /tools [get]
func (h *HealthHandler) ListTools(c *fiber.Ctx) error {
	all := h.registry.Tools()
	out := make([]ToolInfo, 0, len(all))
	for _, t := range all {
		out = append(out, ToolInfo{Name: t.Name, Description: t.Description, Mutates: t.Mutates, Parameters: t.Parameters})
	}
	return c.JSON(out)
}
