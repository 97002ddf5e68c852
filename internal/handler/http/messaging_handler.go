package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mapmark/pinpoint/internal/domain/entity"
	"github.com/mapmark/pinpoint/internal/handler/http/dto"
	"github.com/mapmark/pinpoint/internal/infrastructure/metrics"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

// Realtime event names pushed after a successful write.
const (
	eventNewMessage     = "newMessage"
	eventMessagesRead   = "messagesRead"
	eventMessageDeleted = "messageDeleted"
)

type MessagingHandler struct {
	messagingUsecase usecasecontract.IMessagingUseCase
	notifier         usecasecontract.IRealtimeNotifier
}

// NewMessagingHandler creates a new MessagingHandler.
func NewMessagingHandler(messagingUsecase usecasecontract.IMessagingUseCase, notifier usecasecontract.IRealtimeNotifier) *MessagingHandler {
	return &MessagingHandler{messagingUsecase: messagingUsecase, notifier: notifier}
}

// GetConversations lists the caller's conversations, latest activity first.
func (h *MessagingHandler) GetConversations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	conversations, err := h.messagingUsecase.GetUserConversations(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err, "Failed to fetch conversations")
		return
	}
	SuccessHandler(c, http.StatusOK, conversations)
}

// GetMessages returns one page of a conversation, oldest message first.
func (h *MessagingHandler) GetMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}

	messages, meta, err := h.messagingUsecase.GetConversationMessages(c.Request.Context(), c.Param("conversationId"), userID, page, limit)
	if err != nil {
		HandleError(c, err, "Failed to fetch messages")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.PageResponse{Items: messages, Pagination: meta})
}

// CreateConversation finds or creates the conversation with otherUserId.
func (h *MessagingHandler) CreateConversation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateConversationRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	conversation, err := h.messagingUsecase.FindOrCreateConversation(c.Request.Context(), userID, req.OtherUserID)
	if err != nil {
		HandleError(c, err, "Failed to create conversation")
		return
	}
	SuccessHandler(c, http.StatusOK, conversation)
}

// SendMessage stores a message and pushes newMessage to the conversation room.
func (h *MessagingHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	messageType, ok := entity.ParseMessageType(req.MessageType)
	if !ok {
		ErrorHandler(c, http.StatusBadRequest, "messageType must be text, image or file")
		return
	}

	message, err := h.messagingUsecase.SendMessage(c.Request.Context(), c.Param("conversationId"), userID, req.Content, messageType)
	if err != nil {
		HandleError(c, err, "Failed to send message")
		return
	}
	metrics.MessagesSent.Inc()
	h.notifier.EmitToRoom(message.ConversationID, eventNewMessage, message)
	SuccessHandler(c, http.StatusCreated, message)
}

// MarkAsRead marks the caller's received messages read and pushes messagesRead.
func (h *MessagingHandler) MarkAsRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	conversationID := c.Param("conversationId")

	count, err := h.messagingUsecase.MarkMessagesAsRead(c.Request.Context(), conversationID, userID)
	if err != nil {
		HandleError(c, err, "Failed to mark messages as read")
		return
	}
	event := dto.MessagesReadEvent{ConversationID: conversationID, UserID: userID, Count: count}
	h.notifier.EmitToRoom(conversationID, eventMessagesRead, event)
	SuccessHandler(c, http.StatusOK, event)
}

// DeleteMessage soft-deletes one of the caller's messages and tells the
// conversation room.
func (h *MessagingHandler) DeleteMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	message, err := h.messagingUsecase.DeleteMessage(c.Request.Context(), c.Param("messageId"), userID)
	if err != nil {
		HandleError(c, err, "Failed to delete message")
		return
	}
	event := dto.MessageDeletedEvent{ConversationID: message.ConversationID, MessageID: message.ID}
	h.notifier.EmitToRoom(message.ConversationID, eventMessageDeleted, event)
	MessageHandler(c, http.StatusOK, "Message deleted")
}

// DeleteConversation removes a conversation with all of its messages.
func (h *MessagingHandler) DeleteConversation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.messagingUsecase.DeleteConversation(c.Request.Context(), c.Param("conversationId"), userID); err != nil {
		HandleError(c, err, "Failed to delete conversation")
		return
	}
	MessageHandler(c, http.StatusOK, "Conversation deleted")
}

// SearchUsers handles GET /users/search?q= and its /messages alias.
func (h *MessagingHandler) SearchUsers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		ErrorHandler(c, http.StatusBadRequest, "q is required")
		return
	}
	users, err := h.messagingUsecase.SearchUsers(c.Request.Context(), query, userID)
	if err != nil {
		HandleError(c, err, "Failed to search users")
		return
	}
	SuccessHandler(c, http.StatusOK, users)
}

// GetUnreadCount returns the caller's unread total across conversations.
func (h *MessagingHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	total, err := h.messagingUsecase.GetUnreadTotal(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err, "Failed to count unread messages")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.UnreadResponse{Unread: total})
}
