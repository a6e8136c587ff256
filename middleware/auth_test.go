package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithAuth(t *testing.T) {
	authMiddleware := NewAPIKeyAuthMiddleware("correct-key")

	var handlerCalled bool
	protected := authMiddleware.WithAuth(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid key passes through", func(t *testing.T) {
		handlerCalled = false
		req := httptest.NewRequest(http.MethodPost, "/send", nil)
		req.Header.Set("X-Api-Key", "correct-key")
		recorder := httptest.NewRecorder()

		protected(recorder, req)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("missing key is unauthorized", func(t *testing.T) {
		handlerCalled = false
		req := httptest.NewRequest(http.MethodPost, "/send", nil)
		recorder := httptest.NewRecorder()

		protected(recorder, req)
		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"error": "unauthorized"}`, recorder.Body.String())
	})

	t.Run("wrong key is unauthorized", func(t *testing.T) {
		handlerCalled = false
		req := httptest.NewRequest(http.MethodPost, "/send", nil)
		req.Header.Set("X-Api-Key", "wrong-key")
		recorder := httptest.NewRecorder()

		protected(recorder, req)
		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
