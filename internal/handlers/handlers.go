package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/kb"
)

// Handlers groups everything the HTTP API serves.
type Handlers struct {
	Health   *HealthHandler
	Chat     *ChatHandler
	KB       *KBHandler
	Activity *ActivityHandler
}

// Register mounts the API routes on app.
func Register(app *fiber.App, h Handlers) {
	app.Get("/health", h.Health.GetHealth)
	app.Get("/tools", h.Health.ListTools)

	app.Post("/chat", h.Chat.SendMessage)

	app.Get("/customers", h.KB.ListCustomers)
	app.Post("/customers", h.KB.CreateCustomer)
	app.Get("/customers/:id", h.KB.GetCustomer)

	app.Get("/customers/:id/facts", h.KB.ListFacts)
	app.Post("/customers/:id/facts", h.KB.UpsertFact)
	app.Get("/customers/:id/facts/search", h.KB.SearchFacts)

	app.Get("/customers/:id/offerings", h.KB.ListOfferings)
	app.Post("/customers/:id/offerings", h.KB.AddOffering)

	app.Get("/customers/:id/unanswered", h.KB.ListUnanswered)
	app.Post("/customers/:id/unanswered/:qid/answer", h.KB.AnswerUnanswered)

	app.Get("/customers/:id/logs", h.Activity.ListLogs)
}

func customerID(c *fiber.Ctx) (uint, bool) {
	return uintParam(c, "id")
}

func uintParam(c *fiber.Ctx, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func badParam(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": name + " must be a positive integer"})
}

// storeError maps knowledge store errors onto HTTP statuses.
func storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, kb.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, kb.ErrInvalidArgument):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, kb.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("❌ store request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
