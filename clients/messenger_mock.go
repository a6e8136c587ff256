package clients

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wahabot/models"
)

// MockMessenger is a testify mock of the Messenger interface
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) Send(ctx context.Context, chatID, text, replyTo string) (map[string]any, error) {
	args := m.Called(ctx, chatID, text, replyTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockMessenger) CreatePoll(
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

func (m *MockMessenger) NotifyAdmins(ctx context.Context, text string) {
	m.Called(ctx, text)
}

func (m *MockMessenger) MentionTokensForGroup(
	ctx context.Context,
	chatID string,
	own *models.OwnIdentity,
	adminsOnly bool,
) ([]string, error) {
	args := m.Called(ctx, chatID, own, adminsOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
