package discord

import (
	"context"
	"errors"

	"github.com/nexus/godiscord/internal/models"
)

// ErrUnsupportedKind is returned for a response kind the management API
// does not know.
var ErrUnsupportedKind = errors.New("unsupported response kind")

// Service turns management API requests into response operations on a
// submission record.
type Service struct {
	Rest *Client
}

func NewService(rest *Client) *Service {
	return &Service{Rest: rest}
}

// Respond submits the initial response for a submission. The kind is
// caller-supplied.
func (s *Service) Respond(ctx context.Context, sub *models.ModalSubmission, req models.RespondRequest) error {
	resp := models.InteractionResponse{}
	switch req.Kind {
	case "message", "":
		resp.Type = models.ResponseChannelMessage
		resp.Data = &models.ResponseData{Content: req.Content, Flags: flags(req.Ephemeral)}
	case "deferred":
		resp.Type = models.ResponseDeferredChannelMessage
		resp.Data = &models.ResponseData{Flags: flags(req.Ephemeral)}
	case "deferred_update":
		resp.Type = models.ResponseDeferredUpdateMessage
	case "update":
		resp.Type = models.ResponseUpdateMessage
		resp.Data = &models.ResponseData{Content: req.Content, Flags: flags(req.Ephemeral)}
	default:
		return ErrUnsupportedKind
	}
	return sub.CreateResponse(ctx, s.Rest, resp)
}

func (s *Service) Response(ctx context.Context, sub *models.ModalSubmission) (*models.Message, error) {
	return sub.Response(ctx, s.Rest)
}

func (s *Service) EditResponse(ctx context.Context, sub *models.ModalSubmission, req models.EditRequest) (*models.Message, error) {
	return sub.EditResponse(ctx, s.Rest, models.MessageParams{Content: req.Content})
}

func (s *Service) DeleteResponse(ctx context.Context, sub *models.ModalSubmission) error {
	return sub.DeleteResponse(ctx, s.Rest)
}

func (s *Service) CreateFollowup(ctx context.Context, sub *models.ModalSubmission, req models.FollowupRequest) (*models.Message, error) {
	params := models.MessageParams{Content: req.Content, Flags: flags(req.Ephemeral)}
	return sub.CreateFollowup(ctx, s.Rest, params)
}

func (s *Service) EditFollowup(ctx context.Context, sub *models.ModalSubmission, messageID string, req models.EditRequest) (*models.Message, error) {
	return sub.EditFollowup(ctx, s.Rest, messageID, models.MessageParams{Content: req.Content})
}

func (s *Service) DeleteFollowup(ctx context.Context, sub *models.ModalSubmission, messageID string) error {
	return sub.DeleteFollowup(ctx, s.Rest, messageID)
}

func (s *Service) Defer(ctx context.Context, sub *models.ModalSubmission) error {
	return sub.Defer(ctx, s.Rest)
}

func flags(ephemeral bool) int {
	if ephemeral {
		return models.MessageFlagEphemeral
	}
	return 0
}
