package entity

import "time"

// MaxMessageLength caps message content, counted in characters.
const MaxMessageLength = 1000

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
)

func ParseMessageType(s string) (MessageType, bool) {
	switch MessageType(s) {
	case "":
		return MessageTypeText, true
	case MessageTypeText, MessageTypeImage, MessageTypeFile:
		return MessageType(s), true
	}
	return "", false
}

type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

// ReadReceipt records when a participant read a message.
type ReadReceipt struct {
	UserID string    `bson:"user_id" json:"user_id"`
	ReadAt time.Time `bson:"read_at" json:"read_at"`
}

// Message belongs to exactly one conversation.
type Message struct {
	ID             string        `bson:"_id,omitempty" json:"id"`
	ConversationID string        `bson:"conversation_id" json:"conversation_id"`
	SenderID       string        `bson:"sender_id" json:"sender_id"`
	Content        string        `bson:"content" json:"content"`
	MessageType    MessageType   `bson:"message_type" json:"message_type"`
	Status         MessageStatus `bson:"status" json:"status"`
	ReadBy         []ReadReceipt `bson:"read_by" json:"read_by"`
	IsDeleted      bool          `bson:"is_deleted" json:"is_deleted"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updated_at"`
}

func (m *Message) ReadByUser(userID string) bool {
	for _, r := range m.ReadBy {
		if r.UserID == userID {
			return true
		}
	}
	return false
}
