package contract

import (
	"context"

	"github.com/mapmark/pinpoint/internal/domain/entity"
)

type IPostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, int64, error)
	// SetReaction replaces the user's reaction or adds one if the user has none.
	SetReaction(ctx context.Context, postID string, reaction entity.Reaction) error
	RemoveReaction(ctx context.Context, postID, userID string) error
	AddComment(ctx context.Context, postID string, comment entity.Comment) error
	AddReply(ctx context.Context, postID, commentID string, reply entity.Reply) error
	SoftDelete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
