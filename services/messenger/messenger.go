package messenger

import (
	"context"
	"log"
	"strings"
	"time"

	"wahabot/clients"
	"wahabot/commands"
	"wahabot/models"
	"wahabot/seentracker"
	"wahabot/typing"
)

// maxTypingHold caps how long the typing indicator is held regardless of the
// configured typing bounds
const maxTypingHold = 60 * time.Second

// Service implements clients.Messenger: the full outbound reply pipeline of
// mention encoding, mark-seen, typing simulation and the gateway send.
// Seen and presence failures never block the send itself.
type Service struct {
	gateway clients.MessagingGateway
	typing  *typing.Simulator
	tracker *seentracker.Service
	admins  []string
	sleep   func(time.Duration)
}

func NewService(
	gateway clients.MessagingGateway,
	simulator *typing.Simulator,
	tracker *seentracker.Service,
	admins []string,
) *Service {
	return &Service{
		gateway: gateway,
		typing:  simulator,
		tracker: tracker,
		admins:  admins,
		sleep:   time.Sleep,
	}
}

// Send delivers a text reply to a chat. Wire-format mentions in the text are
// rewritten to their compact form and attached as a mention list.
func (s *Service) Send(ctx context.Context, chatID, text, replyTo string) (map[string]any, error) {
	compact, mentions := commands.EncodeForSending(text)

	s.markChatSeen(ctx, chatID, replyTo)
	s.simulateTyping(ctx, chatID, compact, mentions)

	return s.gateway.SendText(ctx, chatID, compact, replyTo, mentions)
}

// CreatePoll creates a poll in a chat, marking the chat seen first
func (s *Service) CreatePoll(
	ctx context.Context,
	chatID, name string,
	options []string,
	multi bool,
	replyTo string,
) (map[string]any, error) {
	s.markChatSeen(ctx, chatID, replyTo)
	return s.gateway.CreatePoll(ctx, chatID, name, options, multi, replyTo)
}

// NotifyAdmins sends a text to every configured admin recipient through the
// full send pipeline. Bare phone numbers are normalized to chat ids;
// per-recipient failures are logged and skipped.
func (s *Service) NotifyAdmins(ctx context.Context, text string) {
	for _, admin := range s.admins {
		sendTo := admin
		if !strings.Contains(sendTo, "@") {
			sendTo = strings.TrimSpace(strings.Trim(sendTo, "+")) + "@c.us"
		} else {
			sendTo = strings.TrimSpace(sendTo)
		}

		if _, err := s.Send(ctx, sendTo, text, ""); err != nil {
			log.Printf("❌ Failed to notify admin %s: %v", admin, err)
			continue
		}
	}
}

// MentionTokensForGroup enumerates a group's members as mention tokens,
// preferring label over plain id over routing id, optionally keeping admins
// only. The bot's own identity is always excluded.
func (s *Service) MentionTokensForGroup(
	ctx context.Context,
	chatID string,
	own *models.OwnIdentity,
	adminsOnly bool,
) ([]string, error) {
	members, err := s.gateway.GetGroupMembers(ctx, chatID)
	if err != nil {
		return nil, err
	}

	var tokens []string
	for _, member := range members {
		target := member.MentionTarget()
		if target == "" {
			continue
		}
		if adminsOnly && !member.IsAdmin() {
			continue
		}
		if own != nil && (target == own.ID || target == own.Label || target == own.JID) {
			log.Printf("⏭️ Not mentioning self in %s", chatID)
			continue
		}
		tokens = append(tokens, "@"+target)
	}
	return tokens, nil
}

// markChatSeen marks the reply target as read when one is known, otherwise
// the stored last-seen pointer. Failures are logged and swallowed.
func (s *Service) markChatSeen(ctx context.Context, chatID, replyTo string) {
	var err error
	if replyTo != "" {
		log.Printf("📋 Marking seen for reply in %s", chatID)
		err = s.tracker.ConfirmExplicit(ctx, chatID, replyTo)
	} else {
		err = s.tracker.Confirm(ctx, chatID)
	}
	if err != nil {
		log.Printf("❌ Error marking chat %s as seen: %v", chatID, err)
	}
}

// simulateTyping holds the typing presence indicator for the estimated
// duration, then releases it to paused. A failure to start typing skips the
// hold entirely; a failure to release is logged and swallowed. A reply is
// never blocked by a typing-indicator fault.
func (s *Service) simulateTyping(ctx context.Context, chatID, text string, mentions []string) {
	if err := s.gateway.SetPresence(ctx, chatID, clients.PresenceTyping); err != nil {
		log.Printf("❌ Error typing in %s: %v", chatID, err)
		return
	}

	delay := time.Duration(s.typing.EstimateDelay(text, mentions) * float64(time.Second))
	if delay > maxTypingHold {
		delay = maxTypingHold
	}
	s.sleep(delay)

	if err := s.gateway.SetPresence(ctx, chatID, clients.PresencePaused); err != nil {
		log.Printf("❌ Error pausing in %s: %v", chatID, err)
	}
}
