package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

const (
	maxPostLength    = 5000
	maxCommentLength = 1000
	maxPostImages    = 10
)

type PostUsecase struct {
	postRepo      contract.IPostRepository
	userRepo      contract.IUserRepository
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	maxPageSize   int
	now           func() time.Time
}

var _ usecasecontract.IPostUseCase = (*PostUsecase)(nil)

// NewPostUsecase creates a new PostUsecase.
func NewPostUsecase(
	postRepo contract.IPostRepository,
	userRepo contract.IUserRepository,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
) *PostUsecase {
	return &PostUsecase{
		postRepo:      postRepo,
		userRepo:      userRepo,
		uuidGenerator: uuidGenerator,
		logger:        logger,
		maxPageSize:   cfg.GetMaxPageSize(),
		now:           time.Now,
	}
}

// CreatePost publishes a post. When wallOwnerID is set the post lands on that
// user's wall.
func (uc *PostUsecase) CreatePost(ctx context.Context, authorID, content string, images []string, wallOwnerID *string) (*entity.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" && len(images) == 0 {
		return nil, fmt.Errorf("%w: post must have content or images", entity.ErrValidation)
	}
	if utf8.RuneCountInString(content) > maxPostLength {
		return nil, fmt.Errorf("%w: post exceeds %d characters", entity.ErrValidation, maxPostLength)
	}
	if len(images) > maxPostImages {
		return nil, fmt.Errorf("%w: at most %d images per post", entity.ErrValidation, maxPostImages)
	}

	if wallOwnerID != nil {
		owner := strings.TrimSpace(*wallOwnerID)
		switch {
		case owner == "" || owner == authorID:
			wallOwnerID = nil
		default:
			if _, err := uc.userRepo.GetUserByID(ctx, owner); err != nil {
				return nil, fmt.Errorf("wall owner lookup failed: %w", err)
			}
			wallOwnerID = &owner
		}
	}
	if images == nil {
		images = []string{}
	}

	now := uc.now()
	post := &entity.Post{
		ID:          uc.uuidGenerator.NewUUID(),
		AuthorID:    authorID,
		WallOwnerID: wallOwnerID,
		Content:     content,
		Images:      images,
		Reactions:   []entity.Reaction{},
		Comments:    []entity.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// GetPost returns a post that has not been deleted.
func (uc *PostUsecase) GetPost(ctx context.Context, postID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// ListPosts returns a page of posts, newest first.
func (uc *PostUsecase) ListPosts(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, contract.PaginationMeta, error) {
	pagination := normalizePagination(filter.Page, filter.Limit, uc.maxPageSize)
	filter.Page, filter.Limit = pagination.Page, pagination.PageSize

	posts, total, err := uc.postRepo.List(ctx, filter)
	if err != nil {
		return nil, contract.PaginationMeta{}, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, buildPaginationMeta(pagination, total), nil
}

// ToggleReaction removes the caller's reaction when it matches the requested
// type and otherwise sets it.
func (uc *PostUsecase) ToggleReaction(ctx context.Context, postID, userID string, reaction entity.ReactionType) (*entity.Post, error) {
	post, err := uc.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if current, ok := post.ReactionOf(userID); ok && current == reaction {
		err = uc.postRepo.RemoveReaction(ctx, postID, userID)
	} else {
		err = uc.postRepo.SetReaction(ctx, postID, entity.Reaction{
			UserID:    userID,
			Type:      reaction,
			CreatedAt: uc.now(),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update reaction: %w", err)
	}
	return uc.GetPost(ctx, postID)
}

// AddComment appends a comment to a post.
func (uc *PostUsecase) AddComment(ctx context.Context, postID, userID, content string) (*entity.Comment, error) {
	content, err := validateCommentContent(content)
	if err != nil {
		return nil, err
	}
	if _, err := uc.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	comment := entity.Comment{
		ID:        uc.uuidGenerator.NewUUID(),
		UserID:    userID,
		Content:   content,
		Replies:   []entity.Reply{},
		CreatedAt: uc.now(),
	}
	if err := uc.postRepo.AddComment(ctx, postID, comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return &comment, nil
}

// AddReply appends a reply to one comment of a post.
func (uc *PostUsecase) AddReply(ctx context.Context, postID, commentID, userID, content string) (*entity.Reply, error) {
	content, err := validateCommentContent(content)
	if err != nil {
		return nil, err
	}
	post, err := uc.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, c := range post.Comments {
		if c.ID == commentID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: comment %s", entity.ErrNotFound, commentID)
	}

	reply := entity.Reply{
		ID:        uc.uuidGenerator.NewUUID(),
		UserID:    userID,
		Content:   content,
		CreatedAt: uc.now(),
	}
	if err := uc.postRepo.AddReply(ctx, postID, commentID, reply); err != nil {
		return nil, fmt.Errorf("failed to add reply: %w", err)
	}
	return &reply, nil
}

// DeletePost lets the author, or the wall owner for wall posts, remove a post.
// Wall posts are removed outright; other posts are hidden.
func (uc *PostUsecase) DeletePost(ctx context.Context, postID, userID string) error {
	post, err := uc.GetPost(ctx, postID)
	if err != nil {
		return err
	}

	if post.IsWallPost() {
		if post.AuthorID != userID && *post.WallOwnerID != userID {
			return fmt.Errorf("%w: only the author or wall owner can delete this post", entity.ErrForbidden)
		}
		if err := uc.postRepo.Delete(ctx, postID); err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		return nil
	}

	if post.AuthorID != userID {
		return fmt.Errorf("%w: can only delete your own posts", entity.ErrForbidden)
	}
	if err := uc.postRepo.SoftDelete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func validateCommentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("%w: content cannot be empty", entity.ErrValidation)
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return "", fmt.Errorf("%w: content exceeds %d characters", entity.ErrValidation, maxCommentLength)
	}
	return content, nil
}
