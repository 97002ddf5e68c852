package entity

import (
	"sort"
	"strings"
	"time"
)

// Conversation groups the messages exchanged between a fixed set of participants.
type Conversation struct {
	ID            string         `bson:"_id,omitempty" json:"id"`
	Participants  []string       `bson:"participants" json:"participants"`
	PairKey       string         `bson:"pair_key" json:"-"`
	LastMessageID *string        `bson:"last_message_id,omitempty" json:"last_message_id,omitempty"`
	LastActivity  time.Time      `bson:"last_activity" json:"last_activity"`
	UnreadCount   map[string]int `bson:"unread_count" json:"unread_count"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updated_at"`
}

// PairKey is the order-independent identity of a set of participants.
func PairKey(userIDs ...string) string {
	ids := append([]string(nil), userIDs...)
	sort.Strings(ids)
	return strings.Join(ids, ":")
}

// HasParticipant reports whether userID is one of the participants.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// UnreadFor returns the unread counter of one participant, 0 when absent.
func (c *Conversation) UnreadFor(userID string) int {
	if c.UnreadCount == nil {
		return 0
	}
	return c.UnreadCount[userID]
}

// ConversationSummary is a conversation as listed for one user.
type ConversationSummary struct {
	ID                string          `json:"id"`
	OtherParticipants []PublicProfile `json:"other_participants"`
	LastMessage       *Message        `json:"last_message,omitempty"`
	LastActivity      time.Time       `json:"last_activity"`
	UnreadCount       int             `json:"unread_count"`
}
