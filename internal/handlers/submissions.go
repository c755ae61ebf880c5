package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nexus/godiscord/internal/discord"
	"github.com/nexus/godiscord/internal/models"
)

// SubmissionHandler serves stored submissions and drives the response
// operations on them.
type SubmissionHandler struct {
	Store   *SubmissionStore
	Service *discord.Service
}

func NewSubmissionHandler(store *SubmissionStore, service *discord.Service) *SubmissionHandler {
	return &SubmissionHandler{Store: store, Service: service}
}

func (h *SubmissionHandler) List(c *fiber.Ctx) error {
	subs, err := h.Store.List(c.Query("custom_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list submissions"})
	}
	return c.JSON(subs)
}

func (h *SubmissionHandler) Get(c *fiber.Ctx) error {
	sub, ok := h.load(c)
	if !ok {
		return nil
	}
	return c.JSON(sub)
}

func (h *SubmissionHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.Store.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read stats"})
	}
	return c.JSON(stats)
}

func (h *SubmissionHandler) GetResponse(c *fiber.Ctx) error {
	sub, ok := h.load(c)
	if !ok {
		return nil
	}
	msg, err := h.Service.Response(c.UserContext(), sub.Record())
	if err != nil {
		return restError(c, err)
	}
	return c.JSON(msg)
}

func (h *SubmissionHandler) Respond(c *fiber.Ctx) error {
	sub, ok := h.load(c)
	if !ok {
		return nil
	}
	var req models.RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.Service.Respond(c.UserContext(), sub.Record(), req); err != nil {
		return restError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success"})
}

func (h *SubmissionHandler) EditResponse(c *fiber.Ctx) error {
	sub, ok := h.load(c)
	if !ok {
		return nil
	}
	var req models.EditRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	msg, err := h.Service.EditResponse(c.UserContext(), sub.Record(), req)
	if err != nil {
		return restError(c, err)
	}
	return c.JSON(msg)
}

func (h *SubmissionHandler) DeleteResponse(c *fiber.Ctx) error {
	sub, ok := h.load(c)
	if !ok {
		return nil
	}
	if err := h.Service.DeleteResponse(c.UserContext(), sub.Record()); err != nil {
		return restError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success"})
}

func (h *SubmissionHandler) CreateFollowup(c *fiber.Ctx) error {
	sub, ok := h.load(c)
	if !ok {
		return nil
	}
	var req models.FollowupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	msg, err := h.Service.CreateFollowup(c.UserContext(), sub.Record(), req)
	if err != nil {
		return restError(c, err)
	}
	return c.JSON(msg)
}

func (h *SubmissionHandler) EditFollowup(c *fiber.Ctx) error {
	sub, ok := h.load(c)
	if !ok {
		return nil
	}
	var req models.EditRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	msg, err := h.Service.EditFollowup(c.UserContext(), sub.Record(), c.Params("message_id"), req)
	if err != nil {
		return restError(c, err)
	}
	return c.JSON(msg)
}

func (h *SubmissionHandler) DeleteFollowup(c *fiber.Ctx) error {
	sub, ok := h.load(c)
	if !ok {
		return nil
	}
	if err := h.Service.DeleteFollowup(c.UserContext(), sub.Record(), c.Params("message_id")); err != nil {
		return restError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success"})
}

func (h *SubmissionHandler) Defer(c *fiber.Ctx) error {
	sub, ok := h.load(c)
	if !ok {
		return nil
	}
	if err := h.Service.Defer(c.UserContext(), sub.Record()); err != nil {
		return restError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success"})
}

// load resolves the :id route param to a stored submission. On failure it
// writes the error response itself and reports ok=false.
func (h *SubmissionHandler) load(c *fiber.Ctx) (*StoredSubmission, bool) {
	sub, err := h.Store.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "submission not found"})
		} else {
			_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load submission"})
		}
		return nil, false
	}
	return sub, true
}

// restError maps the error taxonomy of the response operations onto HTTP:
// Discord API errors keep their status, local validation errors are 400s,
// anything else is a 500.
func restError(c *fiber.Ctx, err error) error {
	var apiErr *discord.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Status).JSON(fiber.Map{"error": apiErr.Message, "code": apiErr.Code})
	}
	var tooLong *models.ContentTooLongError
	if errors.As(err, &tooLong) || errors.Is(err, discord.ErrUnsupportedKind) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
