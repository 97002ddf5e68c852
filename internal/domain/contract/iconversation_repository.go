package contract

import (
	"context"
	"time"

	"github.com/mapmark/pinpoint/internal/domain/entity"
)

// IConversationRepository persists conversations.
type IConversationRepository interface {
	// FindOrCreate returns the conversation whose participants are exactly the
	// given pair, creating it when none exists.
	FindOrCreate(ctx context.Context, conversation *entity.Conversation) (*entity.Conversation, error)
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	// ListByParticipant returns every conversation of userID, latest activity first.
	ListByParticipant(ctx context.Context, userID string) ([]*entity.Conversation, error)
	// RecordMessage points lastMessage at messageID, bumps lastActivity and
	// increments the unread counter of every participant except senderID.
	RecordMessage(ctx context.Context, conversationID, messageID, senderID string, at time.Time) error
	ResetUnread(ctx context.Context, conversationID, userID string) error
	Delete(ctx context.Context, id string) error
}
