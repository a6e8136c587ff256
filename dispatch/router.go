package dispatch

import (
	"context"
	"fmt"
	"log"

	"wahabot/clients"
	"wahabot/models"
)

// Router resolves the ordered handler list for a parsed event and invokes it
type Router struct {
	registry  *Registry
	gateway   clients.MessagingGateway
	messenger clients.Messenger
}

func NewRouter(registry *Registry, gateway clients.MessagingGateway, messenger clients.Messenger) *Router {
	return &Router{
		registry:  registry,
		gateway:   gateway,
		messenger: messenger,
	}
}

// DispatchMessage routes a replyable message event through the handler
// tables. The exact-command handler, if any, runs first, followed by one
// handler per distinct mention in first-seen order. Handlers run strictly
// in sequence and the result of the LAST handler is the response for the
// whole request; earlier results are dropped.
//
// A failure in the primary chain aborts the dispatch and propagates, while
// failures in a fallback chain are logged and the remaining fallbacks still
// run.
func (r *Router) DispatchMessage(
	ctx context.Context,
	parsed *models.ParsedEvent,
	inv models.CommandInvocation,
	raw map[string]any,
) (Result, error) {
	req := &Request{
		Messenger: r.messenger,
		Gateway:   r.gateway,
		ChatID:    parsed.ChatID,
		MessageID: parsed.ReplyID,
		Args:      inv.Args,
		Mentions:  inv.Mentions,
		Sticker:   parsed.Sticker,
		Raw:       raw,
		Parsed:    parsed,
	}

	var handlers []HandlerFunc
	if maybeHandler := r.registry.CommandHandler(inv.Command); maybeHandler.IsPresent() {
		handlers = append(handlers, maybeHandler.MustGet())
	}
	for _, mention := range inv.Mentions {
		if maybeHandler := r.registry.MentionHandler(mention); maybeHandler.IsPresent() {
			handlers = append(handlers, maybeHandler.MustGet())
		}
	}

	if len(handlers) > 0 {
		var result Result
		for _, handler := range handlers {
			var err error
			result, err = handler(ctx, req)
			if err != nil {
				return nil, fmt.Errorf("handler failed: %w", err)
			}
		}
		if result == nil {
			result = Result{"ok": true}
		}
		return result, nil
	}

	if len(inv.Mentions) > 0 {
		log.Printf("⏭️ Mentions did not match any handler")
	} else if inv.Command != "" {
		log.Printf("⏭️ Command %q has no handler", inv.Command)
	}

	var fallbacks []HandlerFunc
	if parsed.MentionedMe {
		log.Printf("🎯 Switching to mention fallback handlers")
		fallbacks = r.registry.mentionFallbacks
	} else {
		log.Printf("🎯 Switching to text fallback handlers")
		fallbacks = r.registry.textFallbacks
	}

	for _, handler := range fallbacks {
		if _, err := handler(ctx, req); err != nil {
			log.Printf("❌ Fallback handler failed: %v", err)
		}
	}

	return Result{
		"ok":      len(fallbacks) > 0,
		"amount":  len(fallbacks),
		"mention": parsed.MentionedMe,
	}, nil
}

// DispatchSession notifies configured administrators of the new status and
// then runs every registered session handler in order. Both the admin
// notification and individual handler failures are best-effort.
func (r *Router) DispatchSession(ctx context.Context, parsed *models.ParsedEvent, raw map[string]any) {
	r.messenger.NotifyAdmins(ctx, fmt.Sprintf("Whatsapp Bot Status: %s", parsed.Mode))

	req := &SessionRequest{
		Messenger: r.messenger,
		Gateway:   r.gateway,
		Status:    parsed.Mode,
		Raw:       raw,
		Parsed:    parsed,
	}
	for _, handler := range r.registry.sessionHandlers {
		if err := handler(ctx, req); err != nil {
			log.Printf("❌ Session handler failed for status %s: %v", parsed.Mode, err)
		}
	}
}

// DispatchSticker routes a sticker descriptor to at most one handler,
// independently of the command/mention pipeline. Handler failures are
// logged, never propagated.
func (r *Router) DispatchSticker(ctx context.Context, parsed *models.ParsedEvent, raw map[string]any) {
	maybeHandler := r.registry.StickerHandler(parsed.Sticker)
	if !maybeHandler.IsPresent() {
		return
	}

	log.Printf("🎯 Handling sticker media in %s", parsed.ChatID)
	req := &Request{
		Messenger: r.messenger,
		Gateway:   r.gateway,
		ChatID:    parsed.ChatID,
		MessageID: parsed.ReplyID,
		Sticker:   parsed.Sticker,
		Raw:       raw,
		Parsed:    parsed,
	}
	if _, err := maybeHandler.MustGet()(ctx, req); err != nil {
		log.Printf("❌ Sticker handler failed: %v", err)
	}
}
