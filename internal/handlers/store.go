package handlers

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nexus/godiscord/internal/models"
)

const submissionSchema = `
CREATE TABLE IF NOT EXISTS submissions (
	id             TEXT PRIMARY KEY,
	interaction_id TEXT NOT NULL,
	application_id TEXT NOT NULL,
	custom_id      TEXT NOT NULL,
	guild_id       TEXT,
	channel_id     TEXT NOT NULL,
	user_id        TEXT NOT NULL,
	username       TEXT NOT NULL DEFAULT '',
	locale         TEXT NOT NULL DEFAULT '',
	token          TEXT NOT NULL,
	inputs         TEXT NOT NULL DEFAULT '{}',
	received_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_custom_id ON submissions (custom_id);
`

// StoredSubmission is a received modal submission at rest. The continuation
// token is kept so the management API can drive response operations later,
// but never leaves the service.
type StoredSubmission struct {
	ID            string    `db:"id" json:"id"`
	InteractionID string    `db:"interaction_id" json:"interactionId"`
	ApplicationID string    `db:"application_id" json:"applicationId"`
	CustomID      string    `db:"custom_id" json:"customId"`
	GuildID       *string   `db:"guild_id" json:"guildId"`
	ChannelID     string    `db:"channel_id" json:"channelId"`
	UserID        string    `db:"user_id" json:"userId"`
	Username      string    `db:"username" json:"username"`
	Locale        string    `db:"locale" json:"locale"`
	Token         string    `db:"token" json:"-"`
	Inputs        string    `db:"inputs" json:"inputs"`
	ReceivedAt    time.Time `db:"received_at" json:"receivedAt"`
}

// Record rebuilds the slice of the submission the response operations need.
func (s *StoredSubmission) Record() *models.ModalSubmission {
	rec := &models.ModalSubmission{
		ID:            s.InteractionID,
		ApplicationID: s.ApplicationID,
		ChannelID:     s.ChannelID,
		User:          models.User{ID: s.UserID, Username: s.Username},
		Token:         s.Token,
		Version:       1,
		Locale:        s.Locale,
	}
	if s.GuildID != nil {
		rec.GuildID = *s.GuildID
	}
	return rec
}

type DBStats struct {
	Submissions int `json:"submissions"`
	Guilds      int `json:"guilds"`
	Users       int `json:"users"`
}

type SubmissionStore struct {
	db *sqlx.DB
}

func NewSubmissionStore(db *sqlx.DB) *SubmissionStore {
	return &SubmissionStore{db: db}
}

func (s *SubmissionStore) Init() error {
	_, err := s.db.Exec(submissionSchema)
	return err
}

func (s *SubmissionStore) Insert(sub *models.ModalSubmission) (*StoredSubmission, error) {
	inputs := map[string]string{}
	for _, row := range sub.Data.Components {
		for _, input := range row.Components {
			inputs[input.CustomID] = input.Value
		}
	}
	encoded, err := json.Marshal(inputs)
	if err != nil {
		return nil, err
	}

	stored := &StoredSubmission{
		ID:            uuid.New().String(),
		InteractionID: sub.ID,
		ApplicationID: sub.ApplicationID,
		CustomID:      sub.Data.CustomID,
		ChannelID:     sub.ChannelID,
		UserID:        sub.User.ID,
		Username:      sub.User.Username,
		Locale:        sub.Locale,
		Token:         sub.Token,
		Inputs:        string(encoded),
		ReceivedAt:    time.Now().UTC(),
	}
	if sub.GuildID != "" {
		stored.GuildID = &sub.GuildID
	}

	_, err = s.db.NamedExec(`
		INSERT INTO submissions (id, interaction_id, application_id, custom_id, guild_id,
		                         channel_id, user_id, username, locale, token, inputs, received_at)
		VALUES (:id, :interaction_id, :application_id, :custom_id, :guild_id,
		        :channel_id, :user_id, :username, :locale, :token, :inputs, :received_at)
	`, stored)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *SubmissionStore) List(customID string) ([]StoredSubmission, error) {
	var subs []StoredSubmission
	var err error
	if customID != "" {
		err = s.db.Select(&subs, `SELECT * FROM submissions WHERE custom_id = ? ORDER BY received_at DESC`, customID)
	} else {
		err = s.db.Select(&subs, `SELECT * FROM submissions ORDER BY received_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []StoredSubmission{}
	}
	return subs, nil
}

func (s *SubmissionStore) Get(id string) (*StoredSubmission, error) {
	var sub StoredSubmission
	if err := s.db.Get(&sub, `SELECT * FROM submissions WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubmissionStore) Stats() (DBStats, error) {
	var stats DBStats
	if err := s.db.Get(&stats.Submissions, `SELECT COUNT(*) FROM submissions`); err != nil {
		return stats, err
	}
	if err := s.db.Get(&stats.Guilds, `SELECT COUNT(DISTINCT guild_id) FROM submissions WHERE guild_id IS NOT NULL`); err != nil {
		return stats, err
	}
	if err := s.db.Get(&stats.Users, `SELECT COUNT(DISTINCT user_id) FROM submissions`); err != nil {
		return stats, err
	}
	return stats, nil
}
