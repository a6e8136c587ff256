package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wahabot/models"
)

func TestEncodeForSending(t *testing.T) {
	t.Run("rewrites wire mentions to compact form", func(t *testing.T) {
		text, mentions := EncodeForSending("hello @123@c.us and @456@lid")
		assert.Equal(t, "hello @123 and @456", text)
		assert.ElementsMatch(t, []string{"123@c.us", "456@lid"}, mentions)
	})

	t.Run("deduplicates repeated mentions", func(t *testing.T) {
		text, mentions := EncodeForSending("@9@s.whatsapp.net ping @9@s.whatsapp.net")
		assert.Equal(t, "@9 ping @9", text)
		assert.Equal(t, []string{"9@s.whatsapp.net"}, mentions)
	})

	t.Run("text without mentions is untouched", func(t *testing.T) {
		text, mentions := EncodeForSending("plain message")
		assert.Equal(t, "plain message", text)
		assert.Empty(t, mentions)
	})

	t.Run("round-trip preserves the mention id set", func(t *testing.T) {
		original := "@1@c.us @2@lid hello @3@s.whatsapp.net @1@c.us"
		compact, mentions := EncodeForSending(original)

		wantIDs := BareMentions(original)
		gotIDs := BareMentions(compact)
		assert.ElementsMatch(t, wantIDs, gotIDs)
		assert.Len(t, mentions, 3)
	})
}

func TestBareMentions(t *testing.T) {
	t.Run("extracts deduplicated ids", func(t *testing.T) {
		ids := BareMentions("@5 hi @6 and @5 again")
		assert.Equal(t, []string{"5", "6"}, ids)
	})

	t.Run("no mentions", func(t *testing.T) {
		assert.Empty(t, BareMentions("nothing here"))
	})
}

func TestIsMentioned(t *testing.T) {
	own := &models.OwnIdentity{
		ID:    "15550001111@c.us",
		JID:   "15550001111@s.whatsapp.net",
		Label: "987654321@lid",
	}

	t.Run("mentioned by plain id", func(t *testing.T) {
		assert.True(t, IsMentioned("hey @15550001111 look", own))
	})

	t.Run("mentioned by label id", func(t *testing.T) {
		assert.True(t, IsMentioned("@987654321 ping", own))
	})

	t.Run("other mention does not match", func(t *testing.T) {
		assert.False(t, IsMentioned("@111222333 hello", own))
	})

	t.Run("no mentions at all", func(t *testing.T) {
		assert.False(t, IsMentioned("hello there", own))
	})

	t.Run("nil identity", func(t *testing.T) {
		assert.False(t, IsMentioned("@15550001111", nil))
	})
}

func TestIsTarget(t *testing.T) {
	const (
		id    = "15550001111@c.us"
		jid   = "15550001111@s.whatsapp.net"
		label = "987654321@lid"
	)

	t.Run("exact match on any identity field", func(t *testing.T) {
		assert.True(t, IsTarget("15550001111@c.us", id, jid, label))
		assert.True(t, IsTarget("987654321@lid", id, jid, label))
	})

	t.Run("bare id matches under a different domain", func(t *testing.T) {
		// participant reported under the jid domain, identity stored as c.us
		assert.True(t, IsTarget("15550001111@s.whatsapp.net", id, "", ""))
	})

	t.Run("different id does not match", func(t *testing.T) {
		assert.False(t, IsTarget("444555666@c.us", id, jid, label))
	})

	t.Run("empty value never matches", func(t *testing.T) {
		assert.False(t, IsTarget("", id, jid, label))
	})
}

func TestCleanupLabel(t *testing.T) {
	t.Run("strips device suffix", func(t *testing.T) {
		assert.Equal(t, "987654321@lid", CleanupLabel("987654321:12@lid"))
	})

	t.Run("strips whitespace", func(t *testing.T) {
		assert.Equal(t, "987654321@lid", CleanupLabel("  987654321@lid "))
	})

	t.Run("label without device suffix is unchanged", func(t *testing.T) {
		assert.Equal(t, "987654321@lid", CleanupLabel("987654321@lid"))
	})

	t.Run("empty label", func(t *testing.T) {
		assert.Equal(t, "", CleanupLabel(""))
	})
}

func TestIsMentionToken(t *testing.T) {
	assert.True(t, IsMentionToken("@123@c.us"))
	assert.True(t, IsMentionToken("@123@lid"))
	assert.True(t, IsMentionToken("@123@s.whatsapp.net"))
	assert.True(t, IsMentionToken("@123"))
	assert.True(t, IsMentionToken("@all"))
	assert.True(t, IsMentionToken("@everyone"))
	assert.False(t, IsMentionToken("@allies"))
	assert.False(t, IsMentionToken("@poll"))
	assert.False(t, IsMentionToken("hello"))
	assert.False(t, IsMentionToken("123"))
}
