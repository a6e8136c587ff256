package waha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"wahabot/clients"
	"wahabot/models"
)

// WAHAClient implements the clients.MessagingGateway interface against a
// WAHA-compatible WhatsApp HTTP gateway
type WAHAClient struct {
	baseURL    string
	apiKey     string
	session    string
	httpClient *http.Client
}

// NewWAHAClient creates a gateway client with a fixed per-call timeout
func NewWAHAClient(baseURL, apiKey, session string, timeout time.Duration) clients.MessagingGateway {
	return &WAHAClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		session: session,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *WAHAClient) postJSON(ctx context.Context, path string, payload map[string]any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp)
}

func (c *WAHAClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(data))
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return nil
}

func decodeResponse(resp *http.Response) (map[string]any, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(data))
	}
	if len(data) == 0 {
		return map[string]any{}, nil
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return result, nil
}

// SendText sends a text message, optionally replying to a message and
// attaching a wire-format mention list
func (c *WAHAClient) SendText(
	ctx context.Context,
	chatID, text, replyTo string,
	mentions []string,
) (map[string]any, error) {
	body := map[string]any{
		"session": c.session,
		"chatId":  chatID,
		"text":    text,
	}
	if replyTo != "" {
		body["reply_to"] = replyTo
	}
	if len(mentions) > 0 {
		body["mentions"] = mentions
	}

	return c.postJSON(ctx, "/api/sendText", body)
}

// MarkSeen marks a specific message as read in a chat
func (c *WAHAClient) MarkSeen(ctx context.Context, chatID, messageID string) error {
	if chatID == "" || messageID == "" {
		return fmt.Errorf("must provide chat id and message id")
	}

	body := map[string]any{
		"chatId":      chatID,
		"messageIds":  []string{messageID},
		"participant": nil,
		"session":     c.session,
	}

	_, err := c.postJSON(ctx, "/api/sendSeen", body)
	return err
}

// SetPresence reports a presence state (typing/paused/offline), optionally
// scoped to a single chat
func (c *WAHAClient) SetPresence(ctx context.Context, chatID, status string) error {
	body := map[string]any{"presence": status}
	if chatID != "" {
		body["chatId"] = chatID
	}

	_, err := c.postJSON(ctx, fmt.Sprintf("/api/%s/presence", c.session), body)
	return err
}

// GetGroupMembers fetches the participant list of a group chat
func (c *WAHAClient) GetGroupMembers(ctx context.Context, chatID string) ([]models.GroupMember, error) {
	if chatID == "" {
		return nil, fmt.Errorf("missing group chat id")
	}

	var raw []struct {
		ID    string `json:"id"`
		JID   string `json:"jid"`
		LID   string `json:"lid"`
		Admin string `json:"admin"`
	}
	path := fmt.Sprintf("/api/%s/groups/%s/participants", c.session, url.PathEscape(chatID))
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return nil, err
	}

	members := make([]models.GroupMember, 0, len(raw))
	for _, m := range raw {
		members = append(members, models.GroupMember{
			ID:    m.ID,
			JID:   m.JID,
			LID:   m.LID,
			Admin: m.Admin,
		})
	}

	log.Printf("📋 Fetched %d group member(s) for %s", len(members), chatID)
	return members, nil
}

// CreatePoll creates a poll in a chat. The gateway accepts at most 12
// options; excess options are truncated rather than rejected.
func (c *WAHAClient) CreatePoll(
	ctx context.Context,
	chatID, name string,
	options []string,
	multi bool,
	replyTo string,
) (map[string]any, error) {
	if len(options) > 12 {
		options = options[:12]
	}

	body := map[string]any{
		"chatId":  chatID,
		"session": c.session,
		"poll": map[string]any{
			"name":            name,
			"options":         options,
			"multipleAnswers": multi,
		},
	}
	if replyTo != "" {
		body["reply_to"] = replyTo
	}

	return c.postJSON(ctx, "/api/sendPoll", body)
}
