package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"wahabot/appctx"
	"wahabot/commands"
	"wahabot/core"
	"wahabot/dispatch"
	"wahabot/events"
	"wahabot/middleware"
	"wahabot/seentracker"
)

// WebhookHandler orchestrates one inbound gateway event end to end:
// normalize, mark seen, route session/sticker side channels, then dispatch
// the command/mention pipeline
type WebhookHandler struct {
	normalizer    *events.Normalizer
	router        *dispatch.Router
	tracker       *seentracker.Service
	alerts        *middleware.ErrorAlertMiddleware
	ignoredEvents map[string]bool
}

func NewWebhookHandler(
	normalizer *events.Normalizer,
	router *dispatch.Router,
	tracker *seentracker.Service,
	alerts *middleware.ErrorAlertMiddleware,
	ignoredEvents []string,
) *WebhookHandler {
	ignored := make(map[string]bool, len(ignoredEvents))
	for _, name := range ignoredEvents {
		ignored[name] = true
	}
	return &WebhookHandler{
		normalizer:    normalizer,
		router:        router,
		tracker:       tracker,
		alerts:        alerts,
		ignoredEvents: ignored,
	}
}

func (h *WebhookHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering gateway webhook endpoint")

	router.HandleFunc("/", h.HandleWebhook).Methods("POST")
	log.Printf("✅ POST / webhook endpoint registered")
}

func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Webhook event received from %s", r.RemoteAddr)

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("❌ Failed to read request body: %v", err)
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	var raw map[string]any
	if err := json.Unmarshal(bodyBytes, &raw); err != nil {
		log.Printf("❌ Failed to parse JSON body: %v", err)
		http.Error(w, "failed to parse body", http.StatusBadRequest)
		return
	}

	eventID := core.NewEventID()
	ctx := appctx.SetEventID(r.Context(), eventID)

	if eventName, ok := raw["event"].(string); ok && h.ignoredEvents[eventName] {
		log.Printf("⏭️ [%s] Event %q is on the ignore list", eventID, eventName)
		writeJSON(w, map[string]any{"status": "ignored"})
		return
	}

	parsed, err := h.normalizer.ParseEvent(raw)
	if err != nil {
		// Unknown event types indicate a gateway contract change and must
		// fail loudly instead of being swallowed
		log.Printf("❌ [%s] %v", eventID, err)
		h.alerts.AlertOnError(err, "Webhook: event normalization")
		http.Error(w, "unsupported event type", http.StatusInternalServerError)
		return
	}

	// Any message with identity gets remembered and marked seen, even when
	// no reply will be sent. Confirmation failures leave the pointer for a
	// later attempt.
	if parsed.ChatID != "" && parsed.ReplyID != "" {
		h.tracker.Record(parsed.ChatID, parsed.ReplyID)
		_ = h.tracker.ConfirmExplicit(ctx, parsed.ChatID, parsed.ReplyID)
	}

	if parsed.IsSession() {
		h.router.DispatchSession(ctx, parsed, raw)
	}

	if parsed.IsMessage() && parsed.Sticker != nil {
		h.router.DispatchSticker(ctx, parsed, raw)
	}

	if !parsed.ShouldReply {
		writeJSON(w, map[string]any{"ok": false})
		return
	}

	inv := commands.ParseCommand(parsed.Text)
	log.Printf("🎯 [%s] Dispatching command=%q args=%d mentions=%d", eventID, inv.Command, len(inv.Args), len(inv.Mentions))

	result, err := h.router.DispatchMessage(ctx, parsed, inv, raw)
	if err != nil {
		log.Printf("❌ [%s] Dispatch failed: %v", eventID, err)
		h.alerts.AlertOnError(err, fmt.Sprintf("Webhook: dispatch of %q", inv.Command))
		http.Error(w, "dispatch failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, result)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ Failed to write response: %v", err)
	}
}
