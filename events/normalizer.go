package events

import (
	"fmt"
	"log"
	"strings"

	"wahabot/commands"
	"wahabot/core"
	"wahabot/models"
)

// Normalizer turns raw inbound webhook payloads into canonical ParsedEvents
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// ParseEvent normalizes a raw webhook event. Malformed or incomplete events
// degrade to ignored or non-replying results; an unknown event type returns
// an error wrapping core.ErrUnsupportedEvent because the event vocabulary is
// assumed closed.
func (n *Normalizer) ParseEvent(raw map[string]any) (*models.ParsedEvent, error) {
	eventType := getString(raw, "event")
	if eventType == "" {
		log.Printf("⏭️ Event without a type - ignoring")
		return &models.ParsedEvent{Kind: models.EventKindIgnored}, nil
	}

	if eventType == "session.status" {
		return n.parseSessionEvent(raw), nil
	}

	if eventType == "message" || strings.HasPrefix(eventType, "message.") {
		return n.parseMessageEvent(raw), nil
	}

	return nil, fmt.Errorf("event type %q: %w", eventType, core.ErrUnsupportedEvent)
}

func (n *Normalizer) parseSessionEvent(raw map[string]any) *models.ParsedEvent {
	status := getString(getMap(raw, "payload"), "status")
	if status == "" {
		log.Printf("⏭️ Session status event without a status - ignoring")
		return &models.ParsedEvent{Kind: models.EventKindIgnored}
	}

	log.Printf("📨 Session status: %s", status)
	return &models.ParsedEvent{
		Kind: models.EventKindSession,
		Mode: models.SessionStatus(status),
	}
}

func (n *Normalizer) parseMessageEvent(raw map[string]any) *models.ParsedEvent {
	payload := getMap(raw, "payload")
	messageID := getString(payload, "id")
	chatID := getString(payload, "from")

	me := getMap(raw, "me")
	myID := getString(me, "id")
	myJID := getString(me, "jid")
	myLabel := commands.CleanupLabel(getString(me, "lid"))

	if myID == "" || myLabel == "" || len(payload) == 0 {
		log.Printf("⚠️ Message received but own identity is invalid")
		return &models.ParsedEvent{
			Kind:        models.EventKindMessage,
			ChatID:      chatID,
			MessageID:   messageID,
			ReplyID:     messageID,
			ShouldReply: false,
		}
	}

	engineData := getMap(payload, "_data")

	if getString(engineData, "status") == "DELIVERY_ACK" {
		log.Printf("⏭️ Delivery acknowledgement - ignoring")
		return &models.ParsedEvent{Kind: models.EventKindIgnored}
	}

	chatType := chatTypeOf(chatID)
	own := &models.OwnIdentity{ID: myID, JID: myJID, Label: myLabel}

	if n.isFromMe(payload, engineData, chatID, own) {
		log.Printf("⏭️ Skipping message from self in %q chat", chatType)
		return &models.ParsedEvent{Kind: models.EventKindIgnored}
	}

	sticker := extractSticker(engineData)

	text := getString(payload, "body")
	if strings.TrimSpace(text) == "" {
		log.Printf("📨 Received message in %q chat with no body", chatType)
		return &models.ParsedEvent{
			Kind:        models.EventKindMessage,
			ChatID:      chatID,
			MessageID:   messageID,
			ReplyID:     messageID,
			ShouldReply: false,
			Sticker:     sticker,
		}
	}

	var senderID, senderLabel string
	if chatType == "g" {
		// The gateway delivers the same group event twice with mismatched
		// from/to identifiers; only the matching copy is processed.
		if chatID != getString(payload, "to") {
			log.Printf("⏭️ Duplicate group message delivery - ignoring")
			return &models.ParsedEvent{Kind: models.EventKindIgnored}
		}
		participantPn := getString(getMap(engineData, "key"), "participantPn")
		senderID = strings.SplitN(participantPn, "@", 2)[0] + "@c.us"
		senderLabel = getString(payload, "participant")
	} else {
		senderID = chatID
		senderLabel = getString(getMap(engineData, "key"), "senderLid")
	}

	log.Printf("📨 Received message in %q chat from %s - %s", chatType, senderID, senderLabel)

	event := &models.ParsedEvent{
		Kind:        models.EventKindMessage,
		IsGroup:     chatType == "g",
		IsChat:      chatType == "c",
		SenderID:    senderID,
		SenderLabel: senderLabel,
		ChatID:      chatID,
		MessageID:   messageID,
		ReplyID:     messageID,
		ShouldReply: true,
		Text:        text,
		MentionedMe: commands.IsMentioned(text, own),
		Own:         own,
		Sticker:     sticker,
	}

	if replyTo := getMap(payload, "replyTo"); len(replyTo) > 0 {
		participant := getString(replyTo, "participant")
		isReplyToMe := commands.IsTarget(participant, myID, myJID, myLabel)
		event.ReplyContext = &models.ReplyContext{
			IsReplyToMe: isReplyToMe,
			Body:        getString(replyTo, "body"),
			CompositeID: MakeReplyID(getString(replyTo, "id"), chatID, participant, isReplyToMe),
		}
	}

	return event
}

// isFromMe determines self-authorship. The checks run in priority order and
// the first match wins: chat id equals own id, then the inner sender-label
// and participant markers, then the explicit fromMe flag.
func (n *Normalizer) isFromMe(
	payload, engineData map[string]any,
	chatID string,
	own *models.OwnIdentity,
) bool {
	key := getMap(engineData, "key")

	switch {
	case chatID == own.ID:
		return true
	case getString(key, "senderLid") == own.Label:
		return true
	case getString(key, "participant") == own.Label:
		return true
	case getBool(payload, "fromMe"):
		return true
	}
	return false
}

func extractSticker(engineData map[string]any) *models.StickerMedia {
	sticker := getMap(getMap(engineData, "message"), "stickerMessage")
	if len(sticker) == 0 {
		return nil
	}
	return &models.StickerMedia{
		Hash: getString(sticker, "fileSha256"),
		Key:  getString(sticker, "mediaKey"),
	}
}

// chatTypeOf derives the chat type from the identifier's domain suffix:
// "g" for groups, "c" for direct chats
func chatTypeOf(chatID string) string {
	idx := strings.LastIndex(chatID, "@")
	suffix := strings.TrimSpace(chatID[idx+1:])
	if suffix == "" {
		return ""
	}
	return strings.ToLower(suffix[:1])
}

// MakeReplyID builds the deterministic composite id for a replied-to message
func MakeReplyID(messageID, chatID, participant string, isSenderMe bool) string {
	return fmt.Sprintf("%t_%s_%s_%s", isSenderMe, chatID, messageID, participant)
}
