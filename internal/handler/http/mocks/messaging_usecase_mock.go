package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

type MockMessagingUsecase struct {
	mock.Mock
}

var _ usecasecontract.IMessagingUseCase = (*MockMessagingUsecase)(nil)

func (m *MockMessagingUsecase) GetUserConversations(ctx context.Context, userID string) ([]entity.ConversationSummary, error) {
	args := m.Called(ctx, userID)
	conversations, _ := args.Get(0).([]entity.ConversationSummary)
	return conversations, args.Error(1)
}

func (m *MockMessagingUsecase) GetConversationMessages(ctx context.Context, conversationID, userID string, page, limit int) ([]*entity.Message, contract.PaginationMeta, error) {
	args := m.Called(ctx, conversationID, userID, page, limit)
	messages, _ := args.Get(0).([]*entity.Message)
	return messages, args.Get(1).(contract.PaginationMeta), args.Error(2)
}

func (m *MockMessagingUsecase) FindOrCreateConversation(ctx context.Context, userID, otherUserID string) (*entity.Conversation, error) {
	args := m.Called(ctx, userID, otherUserID)
	conversation, _ := args.Get(0).(*entity.Conversation)
	return conversation, args.Error(1)
}

func (m *MockMessagingUsecase) SendMessage(ctx context.Context, conversationID, senderID, content string, messageType entity.MessageType) (*entity.Message, error) {
	args := m.Called(ctx, conversationID, senderID, content, messageType)
	message, _ := args.Get(0).(*entity.Message)
	return message, args.Error(1)
}

func (m *MockMessagingUsecase) MarkMessagesAsRead(ctx context.Context, conversationID, userID string) (int64, error) {
	args := m.Called(ctx, conversationID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessagingUsecase) DeleteMessage(ctx context.Context, messageID, userID string) (*entity.Message, error) {
	args := m.Called(ctx, messageID, userID)
	message, _ := args.Get(0).(*entity.Message)
	return message, args.Error(1)
}

func (m *MockMessagingUsecase) DeleteConversation(ctx context.Context, conversationID, userID string) error {
	return m.Called(ctx, conversationID, userID).Error(0)
}

func (m *MockMessagingUsecase) SearchUsers(ctx context.Context, query, currentUserID string) ([]entity.PublicProfile, error) {
	args := m.Called(ctx, query, currentUserID)
	users, _ := args.Get(0).([]entity.PublicProfile)
	return users, args.Error(1)
}

func (m *MockMessagingUsecase) GetUnreadTotal(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockMessagingUsecase) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	args := m.Called(ctx, conversationID, userID)
	return args.Bool(0), args.Error(1)
}
