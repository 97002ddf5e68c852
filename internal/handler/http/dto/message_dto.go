package dto

type CreateConversationRequest struct {
	OtherUserID string `json:"otherUserId" binding:"required"`
}

type SendMessageRequest struct {
	Content     string `json:"content" binding:"required"`
	MessageType string `json:"messageType" binding:"omitempty,messagetype"`
}

type MessagesReadEvent struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
	Count          int64  `json:"count"`
}

type MessageDeletedEvent struct {
	ConversationID string `json:"conversationId"`
	MessageID      string `json:"messageId"`
}

type UnreadResponse struct {
	Unread int `json:"unread"`
}
