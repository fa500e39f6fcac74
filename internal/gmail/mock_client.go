package gmail

import (
	"context"

	"mailmate/internal/model"
)

// MockGmailClient is a mock implementation of service.GmailClient for testing
type MockGmailClient struct {
	FetchMessagesFunc     func(ctx context.Context, accessToken, userEmail string, maxResults int64) ([]*model.Email, error)
	ListConversationsFunc func(ctx context.Context, accessToken, userEmail, query string, maxResults int64) ([]*model.ConversationMessage, error)
}

func NewMockGmailClient() *MockGmailClient {
	return &MockGmailClient{}
}

func (m *MockGmailClient) FetchMessages(ctx context.Context, accessToken, userEmail string, maxResults int64) ([]*model.Email, error) {
	if m.FetchMessagesFunc != nil {
		return m.FetchMessagesFunc(ctx, accessToken, userEmail, maxResults)
	}
	return []*model.Email{}, nil
}

func (m *MockGmailClient) ListConversations(ctx context.Context, accessToken, userEmail, query string, maxResults int64) ([]*model.ConversationMessage, error) {
	if m.ListConversationsFunc != nil {
		return m.ListConversationsFunc(ctx, accessToken, userEmail, query, maxResults)
	}
	return []*model.ConversationMessage{}, nil
}
