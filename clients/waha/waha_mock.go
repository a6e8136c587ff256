package waha

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wahabot/models"
)

// MockMessagingGateway is a testify mock of clients.MessagingGateway
type MockMessagingGateway struct {
	mock.Mock
}

func (m *MockMessagingGateway) SendText(
	ctx context.Context,
	chatID, text, replyTo string,
	mentions []string,
) (map[string]any, error) {
	args := m.Called(ctx, chatID, text, replyTo, mentions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockMessagingGateway) MarkSeen(ctx context.Context, chatID, messageID string) error {
	args := m.Called(ctx, chatID, messageID)
	return args.Error(0)
}

func (m *MockMessagingGateway) SetPresence(ctx context.Context, chatID, status string) error {
	args := m.Called(ctx, chatID, status)
	return args.Error(0)
}

func (m *MockMessagingGateway) GetGroupMembers(
	ctx context.Context,
	chatID string,
) ([]models.GroupMember, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GroupMember), args.Error(1)
}

func (m *MockMessagingGateway) CreatePoll(
	ctx context.Context,
	chatID, name string,
	options []string,
	multi bool,
	replyTo string,
) (map[string]any, error) {
	args := m.Called(ctx, chatID, name, options, multi, replyTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}
