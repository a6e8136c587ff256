package seentracker

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wahabot/clients/waha"
)

func TestSeenTracker(t *testing.T) {
	ctx := context.Background()

	t.Run("record and peek", func(t *testing.T) {
		service := NewService(&waha.MockMessagingGateway{})

		service.Record("123@c.us", "msg-1")
		maybeID := service.Peek("123@c.us")
		require.True(t, maybeID.IsPresent())
		assert.Equal(t, "msg-1", maybeID.MustGet())
	})

	t.Run("record overwrites the previous pointer", func(t *testing.T) {
		service := NewService(&waha.MockMessagingGateway{})

		service.Record("123@c.us", "msg-1")
		service.Record("123@c.us", "msg-2")
		assert.Equal(t, "msg-2", service.Peek("123@c.us").MustGet())
	})

	t.Run("empty ids are not recorded", func(t *testing.T) {
		service := NewService(&waha.MockMessagingGateway{})

		service.Record("", "msg-1")
		service.Record("123@c.us", "")
		assert.False(t, service.Peek("").IsPresent())
		assert.False(t, service.Peek("123@c.us").IsPresent())
	})

	t.Run("confirm clears the pointer on success", func(t *testing.T) {
		gateway := &waha.MockMessagingGateway{}
		gateway.On("MarkSeen", mock.Anything, "123@c.us", "msg-1").Return(nil)
		service := NewService(gateway)

		service.Record("123@c.us", "msg-1")
		require.NoError(t, service.Confirm(ctx, "123@c.us"))
		assert.False(t, service.Peek("123@c.us").IsPresent())
		gateway.AssertExpectations(t)
	})

	t.Run("confirm leaves the pointer in place on failure", func(t *testing.T) {
		gateway := &waha.MockMessagingGateway{}
		gateway.On("MarkSeen", mock.Anything, "123@c.us", "msg-1").Return(fmt.Errorf("gateway down"))
		service := NewService(gateway)

		service.Record("123@c.us", "msg-1")
		assert.Error(t, service.Confirm(ctx, "123@c.us"))
		assert.True(t, service.Peek("123@c.us").IsPresent())
	})

	t.Run("confirm without a stored pointer is a no-op", func(t *testing.T) {
		gateway := &waha.MockMessagingGateway{}
		service := NewService(gateway)

		assert.NoError(t, service.Confirm(ctx, "123@c.us"))
		gateway.AssertNotCalled(t, "MarkSeen", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("confirm explicit clears a stored pointer for the chat", func(t *testing.T) {
		gateway := &waha.MockMessagingGateway{}
		gateway.On("MarkSeen", mock.Anything, "123@c.us", "reply-target").Return(nil)
		service := NewService(gateway)

		service.Record("123@c.us", "msg-1")
		require.NoError(t, service.ConfirmExplicit(ctx, "123@c.us", "reply-target"))
		assert.False(t, service.Peek("123@c.us").IsPresent())
	})

	t.Run("pointers are tracked per chat", func(t *testing.T) {
		gateway := &waha.MockMessagingGateway{}
		gateway.On("MarkSeen", mock.Anything, "a@c.us", "msg-a").Return(nil)
		service := NewService(gateway)

		service.Record("a@c.us", "msg-a")
		service.Record("b@c.us", "msg-b")
		require.NoError(t, service.Confirm(ctx, "a@c.us"))
		assert.False(t, service.Peek("a@c.us").IsPresent())
		assert.Equal(t, "msg-b", service.Peek("b@c.us").MustGet())
	})
}
