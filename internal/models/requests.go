package models

// Request bodies of the management API.

type RespondRequest struct {
	// Kind selects the response callback: "message", "deferred",
	// "deferred_update" or "update". Defaults to "message".
	Kind      string `json:"kind,omitempty"`
	Content   string `json:"content,omitempty"`
	Ephemeral bool   `json:"ephemeral,omitempty"`
}

type FollowupRequest struct {
	Content   string `json:"content"`
	Ephemeral bool   `json:"ephemeral,omitempty"`
}

type EditRequest struct {
	Content string `json:"content"`
}
