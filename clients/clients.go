package clients

import (
	"context"

	"wahabot/models"
)

// Presence states accepted by the messaging gateway
const (
	PresenceTyping  = "typing"
	PresencePaused  = "paused"
	PresenceOffline = "offline"
)

// MessagingGateway is the outbound contract with the WhatsApp HTTP gateway.
// Every operation is a single network call with a fixed per-call timeout
// owned by the implementation; no retries are performed.
type MessagingGateway interface {
	SendText(ctx context.Context, chatID, text, replyTo string, mentions []string) (map[string]any, error)
	MarkSeen(ctx context.Context, chatID, messageID string) error
	SetPresence(ctx context.Context, chatID, status string) error
	GetGroupMembers(ctx context.Context, chatID string) ([]models.GroupMember, error)
	CreatePoll(ctx context.Context, chatID, name string, options []string, multi bool, replyTo string) (map[string]any, error)
}

// Messenger is the high-level outbound surface handed to command handlers.
// Send runs the full reply pipeline: mention encoding, mark-seen, typing
// simulation, then the actual gateway send.
type Messenger interface {
	Send(ctx context.Context, chatID, text, replyTo string) (map[string]any, error)
	CreatePoll(ctx context.Context, chatID, name string, options []string, multi bool, replyTo string) (map[string]any, error)
	NotifyAdmins(ctx context.Context, text string)
	MentionTokensForGroup(ctx context.Context, chatID string, own *models.OwnIdentity, adminsOnly bool) ([]string, error)
}
