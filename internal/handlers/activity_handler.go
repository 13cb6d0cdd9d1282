package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/activity"
)

type ActivityHandler struct {
	log *activity.Log
}

func NewActivityHandler(log *activity.Log) *ActivityHandler {
	return &ActivityHandler{log: log}
}

// ListLogs godoc
// @Summary List activity log
// @Description Returns the customer's chat exchanges, newest first
// @Tags Activity
// @Produce json
// @Param id path int true "Customer ID"
// @Param limit query int false "Maximum entries (default 50)"
// @Success 200 {array} models.Log
// @Router /customers/{id}/logs [get]
func (h *ActivityHandler) ListLogs(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return badParam(c, "id")
	}
	entries, err := h.log.List(c.UserContext(), id, c.QueryInt("limit", 50))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(entries)
}
