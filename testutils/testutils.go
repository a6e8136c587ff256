package testutils

// Fixtures shared by tests across packages. The identity triple mirrors the
// three domains a WhatsApp identity can carry: plain phone, routing jid and
// label, the latter with a device suffix the normalizer must strip.

const (
	TestOwnID       = "15550001111@c.us"
	TestOwnJID      = "15550001111@s.whatsapp.net"
	TestOwnRawLID   = "987654321:12@lid"
	TestOwnCleanLID = "987654321@lid"
)

// MeBlock returns the "me" object of a webhook payload
func MeBlock() map[string]any {
	return map[string]any{
		"id":  TestOwnID,
		"jid": TestOwnJID,
		"lid": TestOwnRawLID,
	}
}

// DirectMessageEvent builds a raw webhook event for a direct-chat message
func DirectMessageEvent(chatID, messageID, body string) map[string]any {
	return map[string]any{
		"event": "message",
		"me":    MeBlock(),
		"payload": map[string]any{
			"id":   messageID,
			"from": chatID,
			"to":   TestOwnID,
			"body": body,
			"_data": map[string]any{
				"key": map[string]any{
					"senderLid": "111222333@lid",
				},
			},
		},
	}
}

// GroupMessageEvent builds a raw webhook event for a group message
func GroupMessageEvent(chatID, messageID, body, participantPn string) map[string]any {
	return map[string]any{
		"event": "message",
		"me":    MeBlock(),
		"payload": map[string]any{
			"id":          messageID,
			"from":        chatID,
			"to":          chatID,
			"body":        body,
			"participant": "444555666@lid",
			"_data": map[string]any{
				"key": map[string]any{
					"participantPn": participantPn,
				},
			},
		},
	}
}

// SessionStatusEvent builds a raw session lifecycle event
func SessionStatusEvent(status string) map[string]any {
	return map[string]any{
		"event": "session.status",
		"payload": map[string]any{
			"status": status,
		},
	}
}
