package usecasecontract

import (
	"context"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
)

// IMessagingUseCase covers conversations and direct messages.
type IMessagingUseCase interface {
	GetUserConversations(ctx context.Context, userID string) ([]entity.ConversationSummary, error)
	// GetConversationMessages returns one page of visible messages, oldest first.
	GetConversationMessages(ctx context.Context, conversationID, userID string, page, limit int) ([]*entity.Message, contract.PaginationMeta, error)
	FindOrCreateConversation(ctx context.Context, userID, otherUserID string) (*entity.Conversation, error)
	SendMessage(ctx context.Context, conversationID, senderID, content string, messageType entity.MessageType) (*entity.Message, error)
	MarkMessagesAsRead(ctx context.Context, conversationID, userID string) (int64, error)
	DeleteMessage(ctx context.Context, messageID, userID string) (*entity.Message, error)
	DeleteConversation(ctx context.Context, conversationID, userID string) error
	SearchUsers(ctx context.Context, query, currentUserID string) ([]entity.PublicProfile, error)
	GetUnreadTotal(ctx context.Context, userID string) (int, error)
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
}
