package seentracker

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/samber/mo"

	"wahabot/clients"
)

// Service remembers the last inbound message id per chat so it can be
// marked read later. State lives for the process lifetime only.
//
// The mutex protects map integrity, not ordering: two concurrent requests
// for the same chat may race in reading and overwriting the per-chat entry.
type Service struct {
	gateway clients.MessagingGateway

	mu       sync.RWMutex
	lastSeen map[string]string
}

func NewService(gateway clients.MessagingGateway) *Service {
	return &Service{
		gateway:  gateway,
		lastSeen: make(map[string]string),
	}
}

// Record stores or overwrites the last-seen pointer for a chat
func (s *Service) Record(chatID, messageID string) {
	if chatID == "" || messageID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen[chatID] = messageID
}

// Peek returns the stored pointer for a chat without clearing it
func (s *Service) Peek(chatID string) mo.Option[string] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if messageID, ok := s.lastSeen[chatID]; ok {
		return mo.Some(messageID)
	}
	return mo.None[string]()
}

// Confirm marks the stored pointer for a chat as read via the gateway. On
// success the pointer is cleared; on failure it is left in place so a later
// confirmation can retry it.
func (s *Service) Confirm(ctx context.Context, chatID string) error {
	maybeMessageID := s.Peek(chatID)
	if !maybeMessageID.IsPresent() {
		log.Printf("⏭️ No message to mark as seen in %s", chatID)
		return nil
	}

	return s.ConfirmExplicit(ctx, chatID, maybeMessageID.MustGet())
}

// ConfirmExplicit marks a specific message as read independent of the
// stored pointer, clearing any stored pointer for the chat on success
func (s *Service) ConfirmExplicit(ctx context.Context, chatID, messageID string) error {
	if err := s.gateway.MarkSeen(ctx, chatID, messageID); err != nil {
		log.Printf("❌ Failed to mark %s seen in %s: %v", messageID, chatID, err)
		return fmt.Errorf("failed to mark message seen: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lastSeen, chatID)
	return nil
}
