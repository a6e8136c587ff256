package waha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wahabot/clients"
)

type capturedRequest struct {
	method string
	path   string
	apiKey string
	body   map[string]any
}

func newTestClient(t *testing.T, status int, response string) (clients.MessagingGateway, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.apiKey = r.Header.Get("X-Api-Key")
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&captured.body)
		}
		w.WriteHeader(status)
		fmt.Fprint(w, response)
	}))
	t.Cleanup(server.Close)

	return NewWAHAClient(server.URL, "secret-key", "default", 5*time.Second), captured
}

func TestSendText(t *testing.T) {
	ctx := context.Background()

	t.Run("sends the full payload", func(t *testing.T) {
		client, captured := newTestClient(t, http.StatusOK, `{"id": "sent-1"}`)

		result, err := client.SendText(ctx, "123@c.us", "hi @5", "reply-1", []string{"5@c.us"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"id": "sent-1"}, result)

		assert.Equal(t, "/api/sendText", captured.path)
		assert.Equal(t, "secret-key", captured.apiKey)
		assert.Equal(t, map[string]any{
			"session":  "default",
			"chatId":   "123@c.us",
			"text":     "hi @5",
			"reply_to": "reply-1",
			"mentions": []any{"5@c.us"},
		}, captured.body)
	})

	t.Run("omits empty reply target and mentions", func(t *testing.T) {
		client, captured := newTestClient(t, http.StatusOK, `{}`)

		_, err := client.SendText(ctx, "123@c.us", "hi", "", nil)
		require.NoError(t, err)
		assert.NotContains(t, captured.body, "reply_to")
		assert.NotContains(t, captured.body, "mentions")
	})

	t.Run("gateway error status is an error", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusBadGateway, `upstream down`)

		result, err := client.SendText(ctx, "123@c.us", "hi", "", nil)
		assert.Nil(t, result)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})
}

func TestMarkSeen(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the message id list", func(t *testing.T) {
		client, captured := newTestClient(t, http.StatusOK, `{}`)

		require.NoError(t, client.MarkSeen(ctx, "123@c.us", "msg-1"))
		assert.Equal(t, "/api/sendSeen", captured.path)
		assert.Equal(t, []any{"msg-1"}, captured.body["messageIds"])
	})

	t.Run("requires both ids", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusOK, `{}`)

		assert.Error(t, client.MarkSeen(ctx, "", "msg-1"))
		assert.Error(t, client.MarkSeen(ctx, "123@c.us", ""))
	})
}

func TestSetPresence(t *testing.T) {
	ctx := context.Background()

	t.Run("presence is scoped to the session", func(t *testing.T) {
		client, captured := newTestClient(t, http.StatusOK, ``)

		require.NoError(t, client.SetPresence(ctx, "123@c.us", clients.PresenceTyping))
		assert.Equal(t, "/api/default/presence", captured.path)
		assert.Equal(t, map[string]any{
			"presence": "typing",
			"chatId":   "123@c.us",
		}, captured.body)
	})

	t.Run("global presence omits the chat id", func(t *testing.T) {
		client, captured := newTestClient(t, http.StatusOK, ``)

		require.NoError(t, client.SetPresence(ctx, "", clients.PresenceOffline))
		assert.NotContains(t, captured.body, "chatId")
	})
}

func TestGetGroupMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes the participant list", func(t *testing.T) {
		client, captured := newTestClient(t, http.StatusOK,
			`[{"id": "1@c.us", "lid": "11@lid", "admin": "admin"}, {"id": "2@c.us"}]`)

		members, err := client.GetGroupMembers(ctx, "99999@g.us")
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "1@c.us", members[0].ID)
		assert.Equal(t, "11@lid", members[0].LID)
		assert.True(t, members[0].IsAdmin())
		assert.False(t, members[1].IsAdmin())
		assert.Equal(t, "/api/default/groups/99999@g.us/participants", captured.path)
	})

	t.Run("missing chat id", func(t *testing.T) {
		client, _ := newTestClient(t, http.StatusOK, `[]`)

		_, err := client.GetGroupMembers(ctx, "")
		assert.Error(t, err)
	})
}

func TestCreatePoll(t *testing.T) {
	ctx := context.Background()

	t.Run("wraps the poll body", func(t *testing.T) {
		client, captured := newTestClient(t, http.StatusOK, `{"id": "poll-1"}`)

		_, err := client.CreatePoll(ctx, "123@g.us", "Lunch?", []string{"yes", "no"}, true, "reply-1")
		require.NoError(t, err)
		assert.Equal(t, "/api/sendPoll", captured.path)
		assert.Equal(t, map[string]any{
			"name":            "Lunch?",
			"options":         []any{"yes", "no"},
			"multipleAnswers": true,
		}, captured.body["poll"])
		assert.Equal(t, "reply-1", captured.body["reply_to"])
	})

	t.Run("truncates to twelve options", func(t *testing.T) {
		client, captured := newTestClient(t, http.StatusOK, `{}`)

		options := make([]string, 15)
		for i := range options {
			options[i] = fmt.Sprintf("Option %d", i+1)
		}

		_, err := client.CreatePoll(ctx, "123@g.us", "Big poll", options, false, "")
		require.NoError(t, err)
		poll := captured.body["poll"].(map[string]any)
		assert.Len(t, poll["options"], 12)
	})
}
