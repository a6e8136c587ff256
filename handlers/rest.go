package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"wahabot/clients"
	"wahabot/middleware"
)

// RESTHandler exposes the operator-facing REST surface: a direct send
// endpoint and a health check
type RESTHandler struct {
	messenger clients.Messenger
}

func NewRESTHandler(messenger clients.Messenger) *RESTHandler {
	return &RESTHandler{messenger: messenger}
}

func (h *RESTHandler) SetupEndpoints(router *mux.Router, authMiddleware *middleware.APIKeyAuthMiddleware) {
	log.Printf("🚀 Registering REST endpoints")

	router.HandleFunc("/send", authMiddleware.WithAuth(h.HandleSend)).Methods("POST")
	log.Printf("✅ POST /send endpoint registered")

	router.HandleFunc("/healthcheck", h.HandleHealthcheck).Methods("GET")
	log.Printf("✅ GET /healthcheck endpoint registered")
}

type sendRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func (h *RESTHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "failed to parse body", http.StatusBadRequest)
		return
	}

	if req.ChatID == "" || req.Text == "" {
		writeError(w, "`chat_id` and `text` are both required and cannot be empty", http.StatusBadRequest)
		return
	}

	resp, err := h.messenger.Send(r.Context(), req.ChatID, req.Text, "")
	if err != nil {
		log.Printf("❌ Failed to send message to %s: %v", req.ChatID, err)
		writeError(w, "failed to send message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, resp)
}

func (h *RESTHandler) HandleHealthcheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"status": "ok"})
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]any{"error": message}); err != nil {
		log.Printf("❌ Failed to write error response: %v", err)
	}
}
