package models

// ComponentType discriminates the "type" field of a message component.
type ComponentType int

const (
	ComponentTypeActionRow    ComponentType = 1
	ComponentTypeButton       ComponentType = 2
	ComponentTypeStringSelect ComponentType = 3
	ComponentTypeTextInput    ComponentType = 4
)

// ActionRow is a top-level container of components. In a modal submission
// each row carries the submitted value of one input.
type ActionRow struct {
	Type       ComponentType `json:"type"`
	Components []TextInput   `json:"components"`
}

// TextInput is a submitted modal input: the custom id the modal was built
// with plus whatever the user typed.
type TextInput struct {
	Type     ComponentType `json:"type"`
	CustomID string        `json:"custom_id"`
	Value    string        `json:"value"`
}
