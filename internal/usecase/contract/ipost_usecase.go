package usecasecontract

import (
	"context"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
)

type IPostUseCase interface {
	CreatePost(ctx context.Context, authorID, content string, images []string, wallOwnerID *string) (*entity.Post, error)
	GetPost(ctx context.Context, postID string) (*entity.Post, error)
	ListPosts(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, contract.PaginationMeta, error)
	// ToggleReaction sets, replaces or removes the caller's reaction.
	ToggleReaction(ctx context.Context, postID, userID string, reaction entity.ReactionType) (*entity.Post, error)
	AddComment(ctx context.Context, postID, userID, content string) (*entity.Comment, error)
	AddReply(ctx context.Context, postID, commentID, userID, content string) (*entity.Reply, error)
	DeletePost(ctx context.Context, postID, userID string) error
}
