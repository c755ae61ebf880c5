package models

// ResponseKind is the kind of an interaction response callback.
type ResponseKind int

const (
	ResponsePong                   ResponseKind = 1
	ResponseChannelMessage         ResponseKind = 4
	ResponseDeferredChannelMessage ResponseKind = 5
	ResponseDeferredUpdateMessage  ResponseKind = 6
	ResponseUpdateMessage          ResponseKind = 7
	ResponseModal                  ResponseKind = 9
)

// MessageFlagEphemeral marks a response visible only to the invoking user.
const MessageFlagEphemeral = 1 << 6

// InteractionResponse is the body of the initial response callback.
type InteractionResponse struct {
	Type ResponseKind  `json:"type"`
	Data *ResponseData `json:"data,omitempty"`
}

// ResponseData is the message part of an initial response.
type ResponseData struct {
	Content string `json:"content,omitempty"`
	TTS     bool   `json:"tts,omitempty"`
	Flags   int    `json:"flags,omitempty"`
}

// MessageParams is the body for follow-up creation and for edits of the
// original response or a follow-up.
type MessageParams struct {
	Content string `json:"content,omitempty"`
	TTS     bool   `json:"tts,omitempty"`
	Flags   int    `json:"flags,omitempty"`
}
