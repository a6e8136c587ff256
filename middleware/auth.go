package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"
)

// APIKeyAuthMiddleware guards operator endpoints with the shared gateway
// API key, carried in the X-Api-Key header
type APIKeyAuthMiddleware struct {
	apiKey string
}

func NewAPIKeyAuthMiddleware(apiKey string) *APIKeyAuthMiddleware {
	return &APIKeyAuthMiddleware{apiKey: apiKey}
}

// WithAuth wraps an HTTP handler with API key authentication
func (m *APIKeyAuthMiddleware) WithAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestKey := r.Header.Get("X-Api-Key")
		if requestKey == "" {
			log.Printf("❌ Missing X-Api-Key header from %s", r.RemoteAddr)
			m.writeErrorResponse(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(requestKey), []byte(m.apiKey)) != 1 {
			log.Printf("❌ Invalid API key from %s", r.RemoteAddr)
			m.writeErrorResponse(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

func (m *APIKeyAuthMiddleware) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		log.Printf("❌ Failed to write error response: %v", err)
	}
}
