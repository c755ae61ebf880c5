package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nexus/godiscord/internal/models"
)

// DefaultBaseURL is the Discord REST API root.
const DefaultBaseURL = "https://discord.com/api/v10"

// APIError is an error response from the Discord API, surfaced verbatim:
// the HTTP status plus Discord's own error code and message.
type APIError struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord api: status %d, code %d: %s", e.Status, e.Code, e.Message)
}

// Client calls the interaction response endpoints. It borrows the HTTP
// transport it is given and holds no other state, so a single instance can
// be shared freely. It implements models.ResponseClient.
type Client struct {
	BaseURL string
	AppID   string
	Token   string
	HTTP    *http.Client
}

func NewClient(appID, botToken string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		AppID:   appID,
		Token:   botToken,
		HTTP:    http.DefaultClient,
	}
}

// Response fetches the current original response message.
func (c *Client) Response(ctx context.Context, token string) (*models.Message, error) {
	var msg models.Message
	err := c.do(ctx, http.MethodGet, c.originalURL(token), nil, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// CreateResponse submits the initial interaction response callback.
func (c *Client) CreateResponse(ctx context.Context, id, token string, resp models.InteractionResponse) error {
	url := fmt.Sprintf("%s/interactions/%s/%s/callback", c.BaseURL, id, token)
	return c.do(ctx, http.MethodPost, url, resp, nil)
}

// EditResponse edits the original response.
func (c *Client) EditResponse(ctx context.Context, token string, params models.MessageParams) (*models.Message, error) {
	var msg models.Message
	err := c.do(ctx, http.MethodPatch, c.originalURL(token), params, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteResponse deletes the original response.
func (c *Client) DeleteResponse(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, c.originalURL(token), nil, nil)
}

// CreateFollowup sends a follow-up message on the interaction token.
func (c *Client) CreateFollowup(ctx context.Context, token string, params models.MessageParams) (*models.Message, error) {
	url := fmt.Sprintf("%s/webhooks/%s/%s", c.BaseURL, c.AppID, token)
	var msg models.Message
	err := c.do(ctx, http.MethodPost, url, params, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// EditFollowup edits a follow-up message.
func (c *Client) EditFollowup(ctx context.Context, token, messageID string, params models.MessageParams) (*models.Message, error) {
	var msg models.Message
	err := c.do(ctx, http.MethodPatch, c.messageURL(token, messageID), params, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteFollowup deletes a follow-up message.
func (c *Client) DeleteFollowup(ctx context.Context, token, messageID string) error {
	return c.do(ctx, http.MethodDelete, c.messageURL(token, messageID), nil, nil)
}

func (c *Client) originalURL(token string) string {
	return fmt.Sprintf("%s/webhooks/%s/%s/messages/@original", c.BaseURL, c.AppID, token)
}

func (c *Client) messageURL(token, messageID string) string {
	return fmt.Sprintf("%s/webhooks/%s/%s/messages/%s", c.BaseURL, c.AppID, token, messageID)
}

// do runs one request. No retries and no timeout of its own; cancellation
// comes in through ctx.
func (c *Client) do(ctx context.Context, method, url string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bot "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		data, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(data, apiErr); err != nil {
			apiErr.Message = string(data)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, url, err)
	}
	return nil
}
