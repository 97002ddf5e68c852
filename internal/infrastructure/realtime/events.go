package realtime

import (
	"strings"

	"github.com/goccy/go-json"
)

// Client to server events.
const (
	EventAuthenticate      = "authenticate"
	EventJoinConversation  = "joinConversation"
	EventLeaveConversation = "leaveConversation"
	EventTyping            = "typing"
	EventPing              = "ping"
)

// Server to client events.
const (
	EventAuthenticated  = "authenticated"
	EventAuthError      = "authError"
	EventUserOnline     = "userOnline"
	EventUserOffline    = "userOffline"
	EventNewMessage     = "newMessage"
	EventMessagesRead   = "messagesRead"
	EventMessageDeleted = "messageDeleted"
	EventUserTyping     = "userTyping"
	EventPong           = "pong"
	EventError          = "error"
)

// Envelope is an inbound frame. Data is decoded per event.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Message is an outbound frame.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

type UserPayload struct {
	UserID string `json:"userId"`
}

type TypingPayload struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId,omitempty"`
	IsTyping       bool   `json:"isTyping"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type authenticatePayload struct {
	Token string `json:"token"`
}

// decodeToken accepts either a bare string or {"token": "..."}.
func decodeToken(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimPrefix(strings.TrimSpace(s), "Bearer ")
	}
	var p authenticatePayload
	if err := json.Unmarshal(raw, &p); err == nil {
		return strings.TrimPrefix(strings.TrimSpace(p.Token), "Bearer ")
	}
	return ""
}

// decodeConversationID accepts either a bare string or {"conversationId": "..."}.
func decodeConversationID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var p TypingPayload
	if err := json.Unmarshal(raw, &p); err == nil {
		return strings.TrimSpace(p.ConversationID)
	}
	return ""
}
