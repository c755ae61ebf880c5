package handlers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/nexus/godiscord/internal/models"
)

// InteractionHandler is the endpoint Discord delivers interaction events to.
type InteractionHandler struct {
	Store *SubmissionStore
}

func NewInteractionHandler(store *SubmissionStore) *InteractionHandler {
	return &InteractionHandler{Store: store}
}

// Handle answers pings and accepts modal submissions. The HTTP response body
// is itself the initial interaction response, so a stored submission is
// acknowledged with a deferred ephemeral message and everything else about
// it happens later through the management API.
func (h *InteractionHandler) Handle(c *fiber.Ctx) error {
	var head models.InteractionHead
	if err := json.Unmarshal(c.Body(), &head); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	switch head.Type {
	case models.InteractionTypePing:
		return c.JSON(models.InteractionResponse{Type: models.ResponsePong})

	case models.InteractionTypeModalSubmit:
		var sub models.ModalSubmission
		if err := json.Unmarshal(c.Body(), &sub); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		stored, err := h.Store.Insert(&sub)
		if err != nil {
			log.Printf("[INTERACTION] failed to store submission %s: %v", sub.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store submission"})
		}
		log.Printf("[INTERACTION] modal %q from user %s stored as %s", sub.Data.CustomID, sub.User.ID, stored.ID)

		return c.JSON(models.InteractionResponse{
			Type: models.ResponseDeferredChannelMessage,
			Data: &models.ResponseData{Flags: models.MessageFlagEphemeral},
		})

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported interaction type"})
	}
}
