package models

import (
	"bytes"
	"context"
	"encoding/json"
	"unicode/utf8"
)

// InteractionType discriminates the "type" field of an interaction payload.
type InteractionType int

const (
	InteractionTypePing                InteractionType = 1
	InteractionTypeApplicationCommand  InteractionType = 2
	InteractionTypeMessageComponent    InteractionType = 3
	InteractionTypeCommandAutocomplete InteractionType = 4
	InteractionTypeModalSubmit         InteractionType = 5
)

// InteractionHead is used for partial parsing: extract the type before
// committing to a full decode.
type InteractionHead struct {
	Type InteractionType `json:"type"`
}

// ModalSubmissionData carries what the user filled in: the custom id the
// modal was opened with and one row per input.
type ModalSubmissionData struct {
	CustomID   string      `json:"custom_id"`
	Components []ActionRow `json:"components"`
}

// TextValue returns the submitted value of the input with the given custom
// id, and whether it was present.
func (d ModalSubmissionData) TextValue(customID string) (string, bool) {
	for _, row := range d.Components {
		for _, input := range row.Components {
			if input.CustomID == customID {
				return input.Value, true
			}
		}
	}
	return "", false
}

// ModalSubmission is an interaction triggered by a modal submit.
//
// It is constructed once by decoding an inbound payload and read-only
// afterwards. GuildID, Member, AppPermissions and GuildLocale are only
// present when the modal was opened inside a guild; Message only when it was
// opened from a message component rather than an application command. Token
// is the opaque continuation token authorizing response operations on this
// interaction; Version is always 1.
//
// https://discord.com/developers/docs/interactions/receiving-and-responding#interaction-object
type ModalSubmission struct {
	ID             string              `json:"id"`
	ApplicationID  string              `json:"application_id"`
	Data           ModalSubmissionData `json:"data"`
	GuildID        string              `json:"guild_id,omitempty"`
	ChannelID      string              `json:"channel_id"`
	Member         *Member             `json:"member,omitempty"`
	User           User                `json:"user"`
	Token          string              `json:"token"`
	Version        int                 `json:"version"`
	Message        *Message            `json:"message,omitempty"`
	AppPermissions *Permissions        `json:"app_permissions,omitempty"`
	Locale         string              `json:"locale"`
	GuildLocale    string              `json:"guild_locale,omitempty"`
}

// UnmarshalJSON decodes the payload key by key so that the invoking user can
// be resolved from either "user" or "member.user", and so that keys this
// version does not know are ignored rather than rejected.
func (m *ModalSubmission) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	member, err := popOptional[Member](raw, "member")
	if err != nil {
		return err
	}
	user, err := popOptional[User](raw, "user")
	if err != nil {
		return err
	}
	if user == nil && member != nil {
		user = member.User
	}
	if user == nil {
		return ErrMissingUser
	}

	var out ModalSubmission
	out.Member = member
	out.User = *user
	if err := pop(raw, "id", &out.ID); err != nil {
		return err
	}
	if err := pop(raw, "application_id", &out.ApplicationID); err != nil {
		return err
	}
	if err := pop(raw, "data", &out.Data); err != nil {
		return err
	}
	if err := pop(raw, "channel_id", &out.ChannelID); err != nil {
		return err
	}
	if err := pop(raw, "token", &out.Token); err != nil {
		return err
	}
	if err := pop(raw, "version", &out.Version); err != nil {
		return err
	}
	if err := pop(raw, "locale", &out.Locale); err != nil {
		return err
	}
	if err := popOptionalInto(raw, "guild_id", &out.GuildID); err != nil {
		return err
	}
	if err := popOptionalInto(raw, "guild_locale", &out.GuildLocale); err != nil {
		return err
	}
	if out.Message, err = popOptional[Message](raw, "message"); err != nil {
		return err
	}
	if out.AppPermissions, err = popOptional[Permissions](raw, "app_permissions"); err != nil {
		return err
	}

	*m = out
	return nil
}

var jsonNull = []byte("null")

// pop removes a required key from the document, decoding it into dst.
func pop(raw map[string]json.RawMessage, key string, dst interface{}) error {
	v, ok := raw[key]
	if !ok {
		return &MissingFieldError{Field: key}
	}
	delete(raw, key)
	if err := json.Unmarshal(v, dst); err != nil {
		return &FieldTypeError{Field: key, Err: err}
	}
	return nil
}

// popOptional removes an optional key; absence (or an explicit null) yields
// nil, not an error.
func popOptional[T any](raw map[string]json.RawMessage, key string) (*T, error) {
	v, ok := raw[key]
	if !ok {
		return nil, nil
	}
	delete(raw, key)
	if bytes.Equal(v, jsonNull) {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(v, &out); err != nil {
		return nil, &FieldTypeError{Field: key, Err: err}
	}
	return &out, nil
}

func popOptionalInto(raw map[string]json.RawMessage, key string, dst *string) error {
	v, err := popOptional[string](raw, key)
	if err != nil {
		return err
	}
	if v != nil {
		*dst = *v
	}
	return nil
}

// ResponseClient is the outbound capability response operations delegate to.
// It is borrowed per call; one underlying transport can serve any number of
// submissions. internal/discord.Client implements it.
type ResponseClient interface {
	Response(ctx context.Context, token string) (*Message, error)
	CreateResponse(ctx context.Context, id, token string, resp InteractionResponse) error
	EditResponse(ctx context.Context, token string, params MessageParams) (*Message, error)
	DeleteResponse(ctx context.Context, token string) error
	CreateFollowup(ctx context.Context, token string, params MessageParams) (*Message, error)
	EditFollowup(ctx context.Context, token, messageID string, params MessageParams) (*Message, error)
	DeleteFollowup(ctx context.Context, token, messageID string) error
}

// Response fetches the initial interaction response message.
func (m *ModalSubmission) Response(ctx context.Context, rest ResponseClient) (*Message, error) {
	return rest.Response(ctx, m.Token)
}

// CreateResponse submits the initial response. One-shot; the kind of
// response is caller-supplied. Message content must be under 2000 unicode
// code points.
func (m *ModalSubmission) CreateResponse(ctx context.Context, rest ResponseClient, resp InteractionResponse) error {
	if resp.Data != nil {
		if err := validateContent(resp.Data.Content); err != nil {
			return err
		}
	}
	return rest.CreateResponse(ctx, m.ID, m.Token, resp)
}

// EditResponse edits the initial response. Does not work for ephemeral
// messages.
func (m *ModalSubmission) EditResponse(ctx context.Context, rest ResponseClient, params MessageParams) (*Message, error) {
	if err := validateContent(params.Content); err != nil {
		return nil, err
	}
	return rest.EditResponse(ctx, m.Token, params)
}

// DeleteResponse deletes the initial response. The API reports an error if
// it was already deleted.
func (m *ModalSubmission) DeleteResponse(ctx context.Context, rest ResponseClient) error {
	return rest.DeleteResponse(ctx, m.Token)
}

// CreateFollowup sends a follow-up message after the initial response.
func (m *ModalSubmission) CreateFollowup(ctx context.Context, rest ResponseClient, params MessageParams) (*Message, error) {
	if err := validateContent(params.Content); err != nil {
		return nil, err
	}
	return rest.CreateFollowup(ctx, m.Token, params)
}

// EditFollowup edits a follow-up message by its message id.
func (m *ModalSubmission) EditFollowup(ctx context.Context, rest ResponseClient, messageID string, params MessageParams) (*Message, error) {
	if err := validateContent(params.Content); err != nil {
		return nil, err
	}
	return rest.EditFollowup(ctx, m.Token, messageID, params)
}

// DeleteFollowup deletes a follow-up message by its message id.
func (m *ModalSubmission) DeleteFollowup(ctx context.Context, rest ResponseClient, messageID string) error {
	return rest.DeleteFollowup(ctx, m.Token, messageID)
}

// Defer acknowledges the interaction with a deferred-update response so the
// token stays usable without sending a visible message yet.
func (m *ModalSubmission) Defer(ctx context.Context, rest ResponseClient) error {
	return m.CreateResponse(ctx, rest, InteractionResponse{Type: ResponseDeferredUpdateMessage})
}

func validateContent(content string) error {
	if n := utf8.RuneCountInString(content); n > MaxContentLength {
		return &ContentTooLongError{Length: n}
	}
	return nil
}
