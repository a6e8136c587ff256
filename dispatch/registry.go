package dispatch

import (
	"context"
	"strings"

	"github.com/samber/mo"

	"wahabot/clients"
	"wahabot/models"
)

// Result is the payload a handler produces; the value of the last handler in
// a dispatch is the one surfaced as the request response
type Result map[string]any

// Request carries everything a message handler needs for one dispatch
type Request struct {
	Messenger clients.Messenger
	Gateway   clients.MessagingGateway
	ChatID    string
	MessageID string
	Args      []string
	Mentions  []string
	Sticker   *models.StickerMedia
	Raw       map[string]any
	Parsed    *models.ParsedEvent
}

// HandlerFunc handles one message, mention, fallback or sticker dispatch
type HandlerFunc func(ctx context.Context, req *Request) (Result, error)

// SessionRequest carries a session lifecycle notification
type SessionRequest struct {
	Messenger clients.Messenger
	Gateway   clients.MessagingGateway
	Status    models.SessionStatus
	Raw       map[string]any
	Parsed    *models.ParsedEvent
}

// SessionHandlerFunc handles one session status notification
type SessionHandlerFunc func(ctx context.Context, req *SessionRequest) error

// StickerAllKey registers a sticker handler as a catch-all
const StickerAllKey = "all"

// Registry holds the process-wide handler tables. It is populated with
// explicit registration calls before the server starts serving and is
// read-only afterwards.
type Registry struct {
	commandHandlers  map[string]HandlerFunc
	mentionHandlers  map[string]HandlerFunc
	mentionFallbacks []HandlerFunc
	textFallbacks    []HandlerFunc
	sessionHandlers  []SessionHandlerFunc
	stickerHandlers  map[string]HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{
		commandHandlers: make(map[string]HandlerFunc),
		mentionHandlers: make(map[string]HandlerFunc),
		stickerHandlers: make(map[string]HandlerFunc),
	}
}

// RegisterCommand binds a handler to an exact command, case-insensitively
func (r *Registry) RegisterCommand(command string, handler HandlerFunc) *Registry {
	r.commandHandlers[strings.ToLower(strings.TrimSpace(command))] = handler
	return r
}

// RegisterMention binds a handler to a mention target: a bare numeric id or
// a literal keyword like "all"
func (r *Registry) RegisterMention(target string, handler HandlerFunc) *Registry {
	r.mentionHandlers[target] = handler
	return r
}

// RegisterMentionFallback appends a handler invoked when the bot was
// mentioned but no command or mention handler matched
func (r *Registry) RegisterMentionFallback(handler HandlerFunc) *Registry {
	r.mentionFallbacks = append(r.mentionFallbacks, handler)
	return r
}

// RegisterTextFallback appends a handler invoked when nothing matched and
// the bot was not mentioned
func (r *Registry) RegisterTextFallback(handler HandlerFunc) *Registry {
	r.textFallbacks = append(r.textFallbacks, handler)
	return r
}

// RegisterSessionHandler appends a handler for session status events
func (r *Registry) RegisterSessionHandler(handler SessionHandlerFunc) *Registry {
	r.sessionHandlers = append(r.sessionHandlers, handler)
	return r
}

// RegisterSticker binds a handler to a sticker content hash or media key,
// or to StickerAllKey as a catch-all
func (r *Registry) RegisterSticker(key string, handler HandlerFunc) *Registry {
	r.stickerHandlers[key] = handler
	return r
}

// CommandHandler looks up the handler for a command, case-insensitively
func (r *Registry) CommandHandler(command string) mo.Option[HandlerFunc] {
	if handler, ok := r.commandHandlers[strings.ToLower(command)]; ok {
		return mo.Some(handler)
	}
	return mo.None[HandlerFunc]()
}

// MentionHandler looks up the handler for a mention target
func (r *Registry) MentionHandler(target string) mo.Option[HandlerFunc] {
	if handler, ok := r.mentionHandlers[target]; ok {
		return mo.Some(handler)
	}
	return mo.None[HandlerFunc]()
}

// StickerHandler resolves the handler for a sticker descriptor. Preference
// order: exact media key, exact content hash, then the catch-all - but the
// catch-all only applies when the sticker carries a key or hash at all.
func (r *Registry) StickerHandler(sticker *models.StickerMedia) mo.Option[HandlerFunc] {
	if sticker == nil {
		return mo.None[HandlerFunc]()
	}

	handlerKey := ""
	if _, ok := r.stickerHandlers[sticker.Key]; ok && sticker.Key != "" {
		handlerKey = sticker.Key
	} else if _, ok := r.stickerHandlers[sticker.Hash]; ok && sticker.Hash != "" {
		handlerKey = sticker.Hash
	} else if sticker.Key != "" || sticker.Hash != "" {
		handlerKey = StickerAllKey
	}

	if handler, ok := r.stickerHandlers[handlerKey]; ok && handlerKey != "" {
		return mo.Some(handler)
	}
	return mo.None[HandlerFunc]()
}
