package models

// EventKind identifies the canonical variant of an inbound webhook event
type EventKind string

const (
	EventKindSession EventKind = "session"
	EventKindMessage EventKind = "message"
	EventKindIgnored EventKind = "ignored"
)

// SessionStatus is the lifecycle state reported by the messaging gateway.
// Any reported status is accepted and forwarded without transition validation.
type SessionStatus string

const (
	SessionStatusStarting   SessionStatus = "starting"
	SessionStatusScanQRCode SessionStatus = "scan_qr_code"
	SessionStatusWorking    SessionStatus = "working"
	SessionStatusStopped    SessionStatus = "stopped"
)

// OwnIdentity is the bot's own id/routing-jid/label triple, used to detect
// self-authorship and self-mentions across the supported identity domains
type OwnIdentity struct {
	ID    string
	JID   string
	Label string
}

// StickerMedia describes an inbound sticker attachment
type StickerMedia struct {
	Hash string
	Key  string
}

// ReplyContext carries details of the message being replied to
type ReplyContext struct {
	// IsReplyToMe is true when the replied-to participant is the bot itself
	IsReplyToMe bool
	Body        string
	// CompositeID is the deterministic reply id built as
	// "{is_sender_me}_{chat_id}_{message_id}_{participant}"
	CompositeID string
}

// ParsedEvent is the canonical representation of one inbound webhook event
type ParsedEvent struct {
	Kind EventKind

	// Mode is set for session events only
	Mode SessionStatus

	ChatID      string
	MessageID   string
	ReplyID     string
	SenderID    string
	SenderLabel string
	IsGroup     bool
	IsChat      bool
	Text        string

	// ShouldReply is false whenever the text is empty or the message was
	// authored by the bot itself. A non-replying message event still carries
	// enough identity to be marked seen.
	ShouldReply bool

	MentionedMe  bool
	ReplyContext *ReplyContext
	Own          *OwnIdentity
	Sticker      *StickerMedia
}

// IsSession reports whether this is a session lifecycle event
func (e *ParsedEvent) IsSession() bool {
	return e.Kind == EventKindSession
}

// IsMessage reports whether this is a message event
func (e *ParsedEvent) IsMessage() bool {
	return e.Kind == EventKindMessage
}
