package models

// Message is the Discord message object. Partial: enough to carry the
// message a component-originated modal was opened from, and to decode the
// messages the response endpoints return.
type Message struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id,omitempty"`
	GuildID   string `json:"guild_id,omitempty"`
	Author    *User  `json:"author,omitempty"`
	Content   string `json:"content,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Flags     int    `json:"flags,omitempty"`
}
