package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

type MockPostUsecase struct {
	mock.Mock
}

var _ usecasecontract.IPostUseCase = (*MockPostUsecase)(nil)

func (m *MockPostUsecase) CreatePost(ctx context.Context, authorID, content string, images []string, wallOwnerID *string) (*entity.Post, error) {
	args := m.Called(ctx, authorID, content, images, wallOwnerID)
	post, _ := args.Get(0).(*entity.Post)
	return post, args.Error(1)
}

func (m *MockPostUsecase) GetPost(ctx context.Context, postID string) (*entity.Post, error) {
	args := m.Called(ctx, postID)
	post, _ := args.Get(0).(*entity.Post)
	return post, args.Error(1)
}

func (m *MockPostUsecase) ListPosts(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, contract.PaginationMeta, error) {
	args := m.Called(ctx, filter)
	posts, _ := args.Get(0).([]*entity.Post)
	return posts, args.Get(1).(contract.PaginationMeta), args.Error(2)
}

func (m *MockPostUsecase) ToggleReaction(ctx context.Context, postID, userID string, reaction entity.ReactionType) (*entity.Post, error) {
	args := m.Called(ctx, postID, userID, reaction)
	post, _ := args.Get(0).(*entity.Post)
	return post, args.Error(1)
}

func (m *MockPostUsecase) AddComment(ctx context.Context, postID, userID, content string) (*entity.Comment, error) {
	args := m.Called(ctx, postID, userID, content)
	comment, _ := args.Get(0).(*entity.Comment)
	return comment, args.Error(1)
}

func (m *MockPostUsecase) AddReply(ctx context.Context, postID, commentID, userID, content string) (*entity.Reply, error) {
	args := m.Called(ctx, postID, commentID, userID, content)
	reply, _ := args.Get(0).(*entity.Reply)
	return reply, args.Error(1)
}

func (m *MockPostUsecase) DeletePost(ctx context.Context, postID, userID string) error {
	return m.Called(ctx, postID, userID).Error(0)
}
