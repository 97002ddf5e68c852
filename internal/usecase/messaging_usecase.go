package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

const (
	defaultMessagePageSize = 50
	maxUserSearchResults   = 10
)

// MessagingUsecase implements conversations and direct messages.
type MessagingUsecase struct {
	conversationRepo contract.IConversationRepository
	messageRepo      contract.IMessageRepository
	userRepo         contract.IUserRepository
	uuidGenerator    contract.IUUIDGenerator
	logger           usecasecontract.IAppLogger
	maxPageSize      int
	now              func() time.Time
}

var _ usecasecontract.IMessagingUseCase = (*MessagingUsecase)(nil)

// NewMessagingUsecase creates a new MessagingUsecase.
func NewMessagingUsecase(
	conversationRepo contract.IConversationRepository,
	messageRepo contract.IMessageRepository,
	userRepo contract.IUserRepository,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
) *MessagingUsecase {
	return &MessagingUsecase{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		uuidGenerator:    uuidGenerator,
		logger:           logger,
		maxPageSize:      cfg.GetMaxPageSize(),
		now:              time.Now,
	}
}

// GetUserConversations lists the caller's conversations, latest activity first,
// with the other participants' profiles and the last message resolved.
func (uc *MessagingUsecase) GetUserConversations(ctx context.Context, userID string) ([]entity.ConversationSummary, error) {
	conversations, err := uc.conversationRepo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversations: %w", err)
	}
	if len(conversations) == 0 {
		return []entity.ConversationSummary{}, nil
	}

	var otherIDs, lastIDs []string
	seen := make(map[string]bool)
	for _, c := range conversations {
		for _, p := range c.Participants {
			if p != userID && !seen[p] {
				seen[p] = true
				otherIDs = append(otherIDs, p)
			}
		}
		if c.LastMessageID != nil {
			lastIDs = append(lastIDs, *c.LastMessageID)
		}
	}

	profiles, err := uc.userRepo.GetProfilesByIDs(ctx, otherIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch participants: %w", err)
	}
	profileByID := make(map[string]entity.PublicProfile, len(profiles))
	for _, p := range profiles {
		profileByID[p.ID] = p
	}

	messageByID := make(map[string]*entity.Message)
	if len(lastIDs) > 0 {
		messages, err := uc.messageRepo.GetByIDs(ctx, lastIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch last messages: %w", err)
		}
		for _, m := range messages {
			messageByID[m.ID] = m
		}
	}

	summaries := make([]entity.ConversationSummary, 0, len(conversations))
	for _, c := range conversations {
		summary := entity.ConversationSummary{
			ID:                c.ID,
			OtherParticipants: []entity.PublicProfile{},
			LastActivity:      c.LastActivity,
			UnreadCount:       c.UnreadFor(userID),
		}
		for _, p := range c.Participants {
			if profile, ok := profileByID[p]; ok && p != userID {
				summary.OtherParticipants = append(summary.OtherParticipants, profile)
			}
		}
		if c.LastMessageID != nil {
			summary.LastMessage = messageByID[*c.LastMessageID]
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetConversationMessages pages through visible messages newest first and
// returns the page in chronological order. Paging is offset based, so
// messages arriving between requests shift page boundaries.
func (uc *MessagingUsecase) GetConversationMessages(ctx context.Context, conversationID, userID string, page, limit int) ([]*entity.Message, contract.PaginationMeta, error) {
	conversation, err := uc.participantConversation(ctx, conversationID, userID)
	if err != nil {
		return nil, contract.PaginationMeta{}, err
	}

	if limit < 1 {
		limit = defaultMessagePageSize
	}
	pagination := normalizePagination(page, limit, uc.maxPageSize)
	messages, total, err := uc.messageRepo.ListVisible(ctx, conversation.ID, pagination)
	if err != nil {
		return nil, contract.PaginationMeta{}, fmt.Errorf("failed to fetch messages: %w", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, buildPaginationMeta(pagination, total), nil
}

// FindOrCreateConversation returns the single conversation between the two users.
func (uc *MessagingUsecase) FindOrCreateConversation(ctx context.Context, userID, otherUserID string) (*entity.Conversation, error) {
	otherUserID = strings.TrimSpace(otherUserID)
	if otherUserID == "" {
		return nil, fmt.Errorf("%w: other user id is required", entity.ErrValidation)
	}
	if otherUserID == userID {
		return nil, fmt.Errorf("%w: cannot start a conversation with yourself", entity.ErrValidation)
	}
	if _, err := uc.userRepo.GetUserByID(ctx, otherUserID); err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", otherUserID, err)
	}

	now := uc.now()
	conversation, err := uc.conversationRepo.FindOrCreate(ctx, &entity.Conversation{
		ID:           uc.uuidGenerator.NewUUID(),
		Participants: []string{userID, otherUserID},
		PairKey:      entity.PairKey(userID, otherUserID),
		LastActivity: now,
		UnreadCount:  map[string]int{userID: 0, otherUserID: 0},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conversation, nil
}

// SendMessage stores a message and updates the parent conversation: last
// message, last activity and the unread counter of every other participant.
func (uc *MessagingUsecase) SendMessage(ctx context.Context, conversationID, senderID, content string, messageType entity.MessageType) (*entity.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message content is required", entity.ErrValidation)
	}
	if utf8.RuneCountInString(content) > entity.MaxMessageLength {
		return nil, fmt.Errorf("%w: message cannot exceed %d characters", entity.ErrValidation, entity.MaxMessageLength)
	}
	messageType, ok := entity.ParseMessageType(string(messageType))
	if !ok {
		return nil, fmt.Errorf("%w: unknown message type", entity.ErrValidation)
	}

	conversation, err := uc.participantConversation(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	message := &entity.Message{
		ID:             uc.uuidGenerator.NewUUID(),
		ConversationID: conversation.ID,
		SenderID:       senderID,
		Content:        content,
		MessageType:    messageType,
		Status:         entity.MessageStatusSent,
		ReadBy:         []entity.ReadReceipt{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	if err := uc.conversationRepo.RecordMessage(ctx, conversation.ID, message.ID, senderID, now); err != nil {
		uc.logger.Errorf("message %s stored but conversation %s not updated: %v", message.ID, conversation.ID, err)
		return nil, fmt.Errorf("failed to update conversation: %w", err)
	}
	return message, nil
}

// MarkMessagesAsRead adds the caller's read receipt to every message they
// received and resets their unread counter.
func (uc *MessagingUsecase) MarkMessagesAsRead(ctx context.Context, conversationID, userID string) (int64, error) {
	conversation, err := uc.participantConversation(ctx, conversationID, userID)
	if err != nil {
		return 0, err
	}
	updated, err := uc.messageRepo.MarkRead(ctx, conversation.ID, userID, uc.now())
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages as read: %w", err)
	}
	if err := uc.conversationRepo.ResetUnread(ctx, conversation.ID, userID); err != nil {
		return 0, fmt.Errorf("failed to reset unread count: %w", err)
	}
	return updated, nil
}

// DeleteMessage soft-deletes a message. Only its sender may do so.
func (uc *MessagingUsecase) DeleteMessage(ctx context.Context, messageID, userID string) (*entity.Message, error) {
	message, err := uc.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	if message.SenderID != userID {
		return nil, fmt.Errorf("%w: can only delete your own messages", entity.ErrForbidden)
	}
	if message.IsDeleted {
		return message, nil
	}
	if err := uc.messageRepo.SoftDelete(ctx, message.ID); err != nil {
		return nil, fmt.Errorf("failed to delete message: %w", err)
	}
	message.IsDeleted = true
	return message, nil
}

// DeleteConversation removes the conversation and all of its messages.
// Messages go first so a failure never leaves messages without a parent.
func (uc *MessagingUsecase) DeleteConversation(ctx context.Context, conversationID, userID string) error {
	conversation, err := uc.participantConversation(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	removed, err := uc.messageRepo.DeleteByConversation(ctx, conversation.ID)
	if err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	if err := uc.conversationRepo.Delete(ctx, conversation.ID); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	uc.logger.Infof("conversation %s deleted by %s (%d messages)", conversation.ID, userID, removed)
	return nil
}

// SearchUsers finds up to ten users other than the caller by username, email
// or name. A blank query returns no users.
func (uc *MessagingUsecase) SearchUsers(ctx context.Context, query, currentUserID string) ([]entity.PublicProfile, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.PublicProfile{}, nil
	}
	users, err := uc.userRepo.SearchUsers(ctx, query, currentUserID, maxUserSearchResults)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

// GetUnreadTotal sums the caller's unread counters across all conversations.
func (uc *MessagingUsecase) GetUnreadTotal(ctx context.Context, userID string) (int, error) {
	conversations, err := uc.conversationRepo.ListByParticipant(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch conversations: %w", err)
	}
	total := 0
	for _, c := range conversations {
		total += c.UnreadFor(userID)
	}
	return total, nil
}

// IsParticipant reports whether userID belongs to the conversation. A missing
// conversation is reported as false rather than an error.
func (uc *MessagingUsecase) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return conversation.HasParticipant(userID), nil
}

func (uc *MessagingUsecase) participantConversation(ctx context.Context, conversationID, userID string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}
	if !conversation.HasParticipant(userID) {
		return nil, fmt.Errorf("%w: not a participant of this conversation", entity.ErrForbidden)
	}
	return conversation, nil
}
