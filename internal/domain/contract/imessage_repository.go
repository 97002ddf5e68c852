package contract

import (
	"context"
	"math"
	"time"

	"github.com/mapmark/pinpoint/internal/domain/entity"
)

type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Skip is the offset of the first item of the page. Pages beyond the
// int64 range saturate instead of wrapping negative.
func (p Pagination) Skip() int64 {
	if p.Page < 2 || p.PageSize < 1 {
		return 0
	}
	page, size := int64(p.Page-1), int64(p.PageSize)
	if page > math.MaxInt64/size {
		return math.MaxInt64
	}
	return page * size
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// IMessageRepository persists messages.
type IMessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	GetByID(ctx context.Context, id string) (*entity.Message, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Message, error)
	// ListVisible returns non-deleted messages of a conversation, newest first.
	ListVisible(ctx context.Context, conversationID string, pagination Pagination) ([]*entity.Message, int64, error)
	// MarkRead adds a read receipt for userID to every message of the
	// conversation that userID did not send and has not read yet.
	MarkRead(ctx context.Context, conversationID, userID string, at time.Time) (int64, error)
	SoftDelete(ctx context.Context, id string) error
	DeleteByConversation(ctx context.Context, conversationID string) (int64, error)
}
