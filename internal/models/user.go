package models

// User is the Discord user object. Partial: only the fields interaction
// handling needs.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username,omitempty"`
	Discriminator string `json:"discriminator,omitempty"`
	GlobalName    string `json:"global_name,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	Bot           bool   `json:"bot,omitempty"`
}

// Member is the guild member record for the invoking user. Only present when
// an interaction is triggered inside a guild.
type Member struct {
	User        *User        `json:"user,omitempty"`
	Nick        string       `json:"nick,omitempty"`
	Roles       []string     `json:"roles,omitempty"`
	JoinedAt    string       `json:"joined_at,omitempty"`
	Permissions *Permissions `json:"permissions,omitempty"`
	Pending     bool         `json:"pending,omitempty"`
}
